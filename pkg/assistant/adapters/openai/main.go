package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
)

const ProviderName = "openai"

type openAIAdapter struct {
	client openai.Client
}

func New(apiKey string) adapters.ContractAdapter {
	return &openAIAdapter{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
		),
	}
}

// Provider implements adapters.ContractAdapter.
func (o *openAIAdapter) Provider() string { return ProviderName }

// Complete implements adapters.ContractAdapter.
func (o *openAIAdapter) Complete(ctx context.Context, input adapters.ContractInput) (*adapters.ContractOutput, error) {
	convertedMsgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(input.Msgs))
	for _, msg := range input.Msgs {
		convertedMsgs = append(convertedMsgs, convertToOpenaiMsg(msg))
	}

	chatCompletion, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: convertedMsgs,
			Model:    openai.ChatModel(input.Model.Name),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return nil, fmt.Errorf("openai completion: empty choices for model %s", input.Model.Name)
	}

	choice := chatCompletion.Choices[0]
	return &adapters.ContractOutput{
		ID:   chatCompletion.ID,
		Text: choice.Message.Content,
		Trace: fmt.Sprintf("model=%s finish_reason=%s\n%s",
			chatCompletion.Model, choice.FinishReason, choice.Message.Content),
		CreatedAt: time.Now(),
	}, nil
}

func convertToOpenaiMsg(msg adapters.ContractMessage) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case adapters.ASSISTANT:
		return openai.AssistantMessage(msg.Content)
	case adapters.SYSTEM:
		return openai.SystemMessage(msg.Content)
	default:
		return openai.UserMessage(msg.Content)
	}
}
