package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRouteOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected RouteDescriptor
	}{
		{
			name:     "plain chat",
			output:   "Route: Chat",
			expected: ChatRoute(),
		},
		{
			name:     "query with target",
			output:   "Thinking...\nRoute: Query:flights\ndone",
			expected: RouteDescriptor{kind: RouteQuery, target: "flights"},
		},
		{
			name:     "bracketed database",
			output:   "Route: [Database:sales]",
			expected: RouteDescriptor{kind: RouteDatabase, target: "sales"},
		},
		{
			name:     "case insensitive marker and kind",
			output:   "route: pLaN",
			expected: RouteDescriptor{kind: RoutePlan},
		},
		{
			name:     "first marker wins",
			output:   "Route: Plan\nRoute: Query:flights",
			expected: RouteDescriptor{kind: RoutePlan},
		},
		{
			name:     "no marker falls back to chat",
			output:   "I think the best option is Query:flights",
			expected: ChatRoute(),
		},
		{
			name:     "unknown kind falls back to chat",
			output:   "Route: Teleport:somewhere",
			expected: ChatRoute(),
		},
		{
			name:     "query without target falls back to chat",
			output:   "Route: Query",
			expected: ChatRoute(),
		},
		{
			name:     "database with empty target falls back to chat",
			output:   "Route: Database:  ",
			expected: ChatRoute(),
		},
		{
			name:     "empty output",
			output:   "",
			expected: ChatRoute(),
		},
		{
			name:     "marker with whitespace padding",
			output:   "   Route:   Query : flights  ",
			expected: RouteDescriptor{kind: RouteQuery, target: "flights"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRouteOutput(tt.output))
		})
	}
}

func TestRouteDescriptorString(t *testing.T) {
	assert.Equal(t, "Chat", ChatRoute().String())
	assert.Equal(t, "Query:flights", RouteDescriptor{kind: RouteQuery, target: "flights"}.String())
}
