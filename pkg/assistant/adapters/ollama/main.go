package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	"github.com/tobenna/maestro/pkg/assistant/providers/ollama"
)

const ProviderName = "ollama"

type ollamaAdapter struct {
	op ollama.OllamaProvider
}

func New(provider ollama.OllamaProvider) adapters.ContractAdapter {
	return &ollamaAdapter{op: provider}
}

// Provider implements adapters.ContractAdapter.
func (o *ollamaAdapter) Provider() string { return ProviderName }

// Complete implements adapters.ContractAdapter.
func (o *ollamaAdapter) Complete(ctx context.Context, input adapters.ContractInput) (*adapters.ContractOutput, error) {
	stream := false
	req := api.ChatRequest{
		Model:    input.Model.Name,
		Messages: o.convertMsgs(input.Msgs),
		Stream:   &stream,
	}

	var sb strings.Builder
	var last api.ChatResponse
	handler := func(cr api.ChatResponse) error {
		sb.WriteString(cr.Message.Content)
		last = cr
		return nil
	}

	if err := o.op.Chat(ctx, req, handler); err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}

	text := sb.String()
	return &adapters.ContractOutput{
		ID:        uuid.New().String(),
		Text:      text,
		Trace:     fmt.Sprintf("model=%s done_reason=%s\n%s", input.Model.Name, last.DoneReason, text),
		CreatedAt: time.Now(),
	}, nil
}

func (o *ollamaAdapter) convertMsgs(msgs []adapters.ContractMessage) []api.Message {
	converted := make([]api.Message, 0, len(msgs))
	for _, msg := range msgs {
		converted = append(converted, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return converted
}
