package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	"github.com/tobenna/maestro/pkg/assistant/providers/gemini"
)

const ProviderName = "gemini"

type geminiAdapter struct {
	gp *gemini.GeminiProvider
}

func New(provider *gemini.GeminiProvider) adapters.ContractAdapter {
	return &geminiAdapter{gp: provider}
}

// Provider implements adapters.ContractAdapter.
func (g *geminiAdapter) Provider() string { return ProviderName }

// Complete implements adapters.ContractAdapter.
func (g *geminiAdapter) Complete(ctx context.Context, input adapters.ContractInput) (*adapters.ContractOutput, error) {
	if len(input.Msgs) == 0 {
		return nil, fmt.Errorf("gemini completion: no messages")
	}

	model := g.gp.Client.GenerativeModel(input.Model.Name)

	// Gemini keeps system guidance out of the turn history.
	history, system := splitMsgs(input.Msgs[:len(input.Msgs)-1])
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	cs := model.StartChat()
	cs.History = history

	final := input.Msgs[len(input.Msgs)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(final.Content))
	if err != nil {
		return nil, fmt.Errorf("gemini completion: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini completion: empty candidates for model %s", input.Model.Name)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := sb.String()
	return &adapters.ContractOutput{
		ID:        uuid.New().String(),
		Text:      text,
		Trace:     fmt.Sprintf("model=%s finish_reason=%v\n%s", input.Model.Name, resp.Candidates[0].FinishReason, text),
		CreatedAt: time.Now(),
	}, nil
}

func splitMsgs(msgs []adapters.ContractMessage) ([]*genai.Content, string) {
	var system []string
	history := make([]*genai.Content, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Role == adapters.SYSTEM {
			system = append(system, msg.Content)
			continue
		}
		role := "user"
		if msg.Role == adapters.ASSISTANT {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history, strings.Join(system, "\n")
}
