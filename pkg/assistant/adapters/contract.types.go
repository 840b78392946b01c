package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MsgRole string

const (
	USER      MsgRole = "user"
	ASSISTANT MsgRole = "assistant"
	SYSTEM    MsgRole = "system"
	TOOL      MsgRole = "tool"
)

type ContractMessage struct {
	Role      MsgRole
	Content   string
	CreatedAt time.Time
}

// ContractTool describes a callable tool offered to the model. The dispatch
// reasoner runs with an empty tool set, but adapters accept one so the same
// contract serves agents that do expose tools.
type ContractTool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ContractSelectedModel identifies one model of one provider, e.g.
// provider "ollama" with name "llama3:8b".
type ContractSelectedModel struct {
	Provider string
	Name     string
}

type ContractInput struct {
	ID       uuid.UUID
	Msgs     []ContractMessage
	ToolList []ContractTool
	Model    ContractSelectedModel
}

// ContractOutput is the completed (non-streaming) result of one model call.
// Trace carries the raw generation the provider returned, before any
// downstream parsing; route classification depends on keeping it verbatim.
type ContractOutput struct {
	ID        string
	Text      string
	Trace     string
	CreatedAt time.Time
}

type ContractAdapter interface {
	Provider() string
	Complete(ctx context.Context, input ContractInput) (*ContractOutput, error)
}
