package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/maestro/internal/config"
)

func testAgentConfigs() []config.AgentConfig {
	return []config.AgentConfig{
		{
			Name:         "Chat",
			LLMType:      "openai:gpt-4o-mini",
			Capabilities: []string{"Chat"},
		},
		{
			Name:         "Router",
			LLMType:      "openai:gpt-4o-mini",
			Capabilities: []string{"Chat", "Plan", "Query", "Database", "Route"},
			QueryEngines: []config.QueryEngineConfig{
				{Name: "flights", Description: "flight schedules and airports"},
			},
			Datasets: []config.DatasetConfig{
				{Name: "sales", Description: "monthly sales figures", Tables: []string{"sales"}},
			},
		},
	}
}

func TestLookupByName(t *testing.T) {
	r := NewRegistry(testAgentConfigs())

	agent, err := r.Lookup("Router")
	require.NoError(t, err)
	assert.Equal(t, "Router", agent.Name)
	assert.True(t, agent.HasCapability(RouteRoute))

	_, err = r.Lookup("missing")
	require.ErrorIs(t, err, ErrAgentNotFound)
}

func TestLookupDefaultResolvesFirstRoutingAgent(t *testing.T) {
	r := NewRegistry(testAgentConfigs())

	agent, err := r.Lookup(DefaultAgentName)
	require.NoError(t, err)
	// "Chat" comes first but has no routing capability
	assert.Equal(t, "Router", agent.Name)
}

func TestLookupDefaultWithoutRoutingAgent(t *testing.T) {
	r := NewRegistry([]config.AgentConfig{
		{Name: "Chat", Capabilities: []string{"Chat"}},
	})

	_, err := r.Lookup(DefaultAgentName)
	require.ErrorIs(t, err, ErrNoRoutingAgent)
}

func TestFindTopics(t *testing.T) {
	r := NewRegistry(testAgentConfigs())
	agent, err := r.Lookup("Router")
	require.NoError(t, err)

	qe, ok := agent.FindQueryEngine("flights")
	require.True(t, ok)
	assert.Equal(t, "flight schedules and airports", qe.Description)

	_, ok = agent.FindQueryEngine("hotels")
	assert.False(t, ok)

	ds, ok := agent.FindDataset("sales")
	require.True(t, ok)
	assert.Equal(t, []string{"sales"}, ds.Tables)

	_, ok = agent.FindDataset("inventory")
	assert.False(t, ok)
}
