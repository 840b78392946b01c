package routing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
)

type fakeReasoner struct {
	text    string
	trace   string
	err     error
	lastMsg []adapters.ContractMessage
	lastLLM string
}

func (f *fakeReasoner) Run(_ context.Context, llmID string, msgs []adapters.ContractMessage, _ []adapters.ContractTool) (*adapters.ContractOutput, error) {
	f.lastMsg = msgs
	f.lastLLM = llmID
	if f.err != nil {
		return nil, f.err
	}
	return &adapters.ContractOutput{Text: f.text, Trace: f.trace}, nil
}

func routerAgent() *RoutingAgent {
	return &RoutingAgent{
		Name:         "Router",
		LLMType:      "openai:gpt-4o-mini",
		Capabilities: []RouteKind{RouteChat, RoutePlan, RouteQuery, RouteDatabase, RouteRoute},
		QueryEngines: []QueryEngineTopic{
			{Name: "flights", Description: "flight schedules"},
			{Name: "hotels", Description: "hotel availability"},
		},
		Datasets: []DatasetTopic{
			{Name: "sales", Description: "monthly sales"},
		},
	}
}

func TestDispatchPromptOrder(t *testing.T) {
	prompt := DispatchPrompt(routerAgent())

	chatIdx := strings.Index(prompt, "- Chat")
	planIdx := strings.Index(prompt, "- Plan")
	flightsIdx := strings.Index(prompt, "[Query:flights]")
	hotelsIdx := strings.Index(prompt, "[Query:hotels]")
	salesIdx := strings.Index(prompt, "[Database:sales]")

	require.NotEqual(t, -1, chatIdx)
	require.NotEqual(t, -1, salesIdx)
	assert.Less(t, chatIdx, planIdx)
	assert.Less(t, planIdx, flightsIdx)
	assert.Less(t, flightsIdx, hotelsIdx)
	assert.Less(t, hotelsIdx, salesIdx)
	assert.Contains(t, prompt, "flight schedules")
	assert.Contains(t, prompt, "monthly sales")
}

func TestClassifyParsesRoute(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Query:flights", trace: "intent trace"}
	c := NewClassifier(reasoner, Logger.Noop())

	route, logs, err := c.Classify(context.Background(), routerAgent(),
		"openai:gpt-4o-mini", "when is the next flight", nil)
	require.NoError(t, err)
	assert.Equal(t, RouteQuery, route.Kind())
	assert.Equal(t, "flights", route.Target())
	assert.Equal(t, "intent trace", logs)
	assert.Equal(t, "openai:gpt-4o-mini", reasoner.lastLLM)

	// dispatch prompt rides in the system message, user prompt last
	require.NotEmpty(t, reasoner.lastMsg)
	assert.Equal(t, adapters.SYSTEM, reasoner.lastMsg[0].Role)
	assert.Equal(t, adapters.USER, reasoner.lastMsg[len(reasoner.lastMsg)-1].Role)
}

func TestClassifyFallsBackToChat(t *testing.T) {
	reasoner := &fakeReasoner{text: "I would pick the flights engine, probably."}
	c := NewClassifier(reasoner, Logger.Noop())

	route, _, err := c.Classify(context.Background(), routerAgent(),
		"openai:gpt-4o-mini", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, RouteChat, route.Kind())
}

func TestClassifyPropagatesModelError(t *testing.T) {
	boom := errors.New("model offline")
	c := NewClassifier(&fakeReasoner{err: boom}, Logger.Noop())

	_, _, err := c.Classify(context.Background(), routerAgent(),
		"openai:gpt-4o-mini", "hello", nil)
	require.ErrorIs(t, err, boom)
}

func TestClassifyIncludesRecentHistory(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Chat"}
	c := NewClassifier(reasoner, Logger.Noop())

	history := []types.ChatEntry{
		{"route": "Chat", "AIOutput": "earlier answer"},
		{"route": "Plan"}, // no AIOutput, skipped
	}
	_, _, err := c.Classify(context.Background(), routerAgent(),
		"openai:gpt-4o-mini", "hello", history)
	require.NoError(t, err)

	require.Len(t, reasoner.lastMsg, 3)
	assert.Equal(t, adapters.ASSISTANT, reasoner.lastMsg[1].Role)
	assert.Equal(t, "earlier answer", reasoner.lastMsg[1].Content)
}
