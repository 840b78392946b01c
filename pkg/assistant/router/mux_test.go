package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
)

type fakeAdapter struct {
	provider string
	lastIn   adapters.ContractInput
	out      *adapters.ContractOutput
	err      error
}

func (f *fakeAdapter) Provider() string { return f.provider }

func (f *fakeAdapter) Complete(_ context.Context, input adapters.ContractInput) (*adapters.ContractOutput, error) {
	f.lastIn = input
	return f.out, f.err
}

func TestParseModelID(t *testing.T) {
	tests := []struct {
		name     string
		llmID    string
		expected adapters.ContractSelectedModel
		wantErr  bool
	}{
		{
			name:     "simple",
			llmID:    "openai:gpt-4o-mini",
			expected: adapters.ContractSelectedModel{Provider: "openai", Name: "gpt-4o-mini"},
		},
		{
			name:     "model name with colon",
			llmID:    "ollama:llama3:8b",
			expected: adapters.ContractSelectedModel{Provider: "ollama", Name: "llama3:8b"},
		},
		{
			name:    "missing separator",
			llmID:   "gpt-4o-mini",
			wantErr: true,
		},
		{
			name:    "empty",
			llmID:   "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := ParseModelID(tt.llmID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, model)
		})
	}
}

func TestMuxRun(t *testing.T) {
	openai := &fakeAdapter{
		provider: "openai",
		out:      &adapters.ContractOutput{ID: "cmpl-1", Text: "hi"},
	}
	mux := NewMux(openai)

	msgs := []adapters.ContractMessage{{Role: adapters.USER, Content: "hello"}}
	out, err := mux.Run(context.Background(), "openai:gpt-4o-mini", msgs, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Text)
	assert.Equal(t, "gpt-4o-mini", openai.lastIn.Model.Name)
	assert.Len(t, openai.lastIn.Msgs, 1)
}

func TestMuxRunUnknownProvider(t *testing.T) {
	mux := NewMux()
	_, err := mux.Run(context.Background(), "gemini:gemini-2.0-flash", nil, nil)
	require.ErrorIs(t, err, ErrUnknownProvider)
}
