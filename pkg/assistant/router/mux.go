package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
)

var (
	ErrUnknownProvider = errors.New("unknown model provider")
	ErrEmptyModelID    = errors.New("empty model id")
)

// Mux fans model calls out to the adapter owning the requested provider.
// Model ids take the "provider:model" form, e.g. "openai:gpt-4o-mini" or
// "ollama:llama3:8b" (everything after the first colon is the model name).
type Mux struct {
	adapters map[string]adapters.ContractAdapter
}

func NewMux(registered ...adapters.ContractAdapter) *Mux {
	m := &Mux{adapters: make(map[string]adapters.ContractAdapter, len(registered))}
	for _, a := range registered {
		m.adapters[a.Provider()] = a
	}
	return m
}

func (m *Mux) Register(a adapters.ContractAdapter) {
	m.adapters[a.Provider()] = a
}

func ParseModelID(llmID string) (adapters.ContractSelectedModel, error) {
	llmID = strings.TrimSpace(llmID)
	if llmID == "" {
		return adapters.ContractSelectedModel{}, ErrEmptyModelID
	}
	provider, name, found := strings.Cut(llmID, ":")
	if !found || name == "" {
		return adapters.ContractSelectedModel{}, fmt.Errorf("model id %q: want provider:model", llmID)
	}
	return adapters.ContractSelectedModel{Provider: provider, Name: name}, nil
}

// Run resolves llmID to an adapter and executes one completion.
func (m *Mux) Run(
	ctx context.Context,
	llmID string,
	msgs []adapters.ContractMessage,
	tools []adapters.ContractTool,
) (*adapters.ContractOutput, error) {
	model, err := ParseModelID(llmID)
	if err != nil {
		return nil, err
	}

	adapter, ok := m.adapters[model.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, model.Provider)
	}

	return adapter.Complete(ctx, adapters.ContractInput{
		ID:       uuid.New(),
		Msgs:     msgs,
		ToolList: tools,
		Model:    model,
	})
}
