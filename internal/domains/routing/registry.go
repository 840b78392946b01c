package routing

import (
	"errors"
	"fmt"

	"github.com/tobenna/maestro/internal/config"
)

var (
	ErrAgentNotFound       = errors.New("routing agent not found")
	ErrNoRoutingAgent      = errors.New("no agent with routing capability configured")
	ErrLLMTypeUnset        = errors.New("agent has no llm type set")
	ErrQueryEngineNotFound = errors.New("query engine not found")
	ErrDatasetNotFound     = errors.New("dataset not found")
)

// DefaultAgentName resolves to the first configured agent with the
// routing capability.
const DefaultAgentName = "default"

type QueryEngineTopic struct {
	Name        string
	Description string
}

type DatasetTopic struct {
	Name        string
	Description string
	Tables      []string
}

// RoutingAgent is one configured agent with the routes it can reach.
type RoutingAgent struct {
	Name         string
	LLMType      string
	Capabilities []RouteKind
	QueryEngines []QueryEngineTopic
	Datasets     []DatasetTopic
}

func (a *RoutingAgent) HasCapability(kind RouteKind) bool {
	for _, c := range a.Capabilities {
		if c == kind {
			return true
		}
	}
	return false
}

func (a *RoutingAgent) FindQueryEngine(name string) (QueryEngineTopic, bool) {
	for _, qe := range a.QueryEngines {
		if qe.Name == name {
			return qe, true
		}
	}
	return QueryEngineTopic{}, false
}

func (a *RoutingAgent) FindDataset(name string) (DatasetTopic, bool) {
	for _, ds := range a.Datasets {
		if ds.Name == name {
			return ds, true
		}
	}
	return DatasetTopic{}, false
}

// Registry holds the configured agents. Built once at startup and
// read-only afterwards.
type Registry struct {
	agents []RoutingAgent
	byName map[string]*RoutingAgent
}

func NewRegistry(cfgs []config.AgentConfig) *Registry {
	r := &Registry{byName: make(map[string]*RoutingAgent, len(cfgs))}
	for _, cfg := range cfgs {
		agent := RoutingAgent{
			Name:    cfg.Name,
			LLMType: cfg.LLMType,
		}
		for _, cap := range cfg.Capabilities {
			agent.Capabilities = append(agent.Capabilities, RouteKind(cap))
		}
		for _, qe := range cfg.QueryEngines {
			agent.QueryEngines = append(agent.QueryEngines, QueryEngineTopic{
				Name:        qe.Name,
				Description: qe.Description,
			})
		}
		for _, ds := range cfg.Datasets {
			agent.Datasets = append(agent.Datasets, DatasetTopic{
				Name:        ds.Name,
				Description: ds.Description,
				Tables:      ds.Tables,
			})
		}
		r.agents = append(r.agents, agent)
	}
	for i := range r.agents {
		r.byName[r.agents[i].Name] = &r.agents[i]
	}
	return r
}

// Lookup resolves an agent by name. DefaultAgentName picks the first
// agent advertising the routing capability in registration order.
func (r *Registry) Lookup(name string) (*RoutingAgent, error) {
	if name == DefaultAgentName {
		for i := range r.agents {
			if r.agents[i].HasCapability(RouteRoute) {
				return &r.agents[i], nil
			}
		}
		return nil, ErrNoRoutingAgent
	}

	agent, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	return agent, nil
}

// Agents lists all configured agents in registration order.
func (r *Registry) Agents() []RoutingAgent {
	return r.agents
}
