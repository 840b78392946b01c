package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
)

// ChatRepository is the single write path for conversation history.
type ChatRepository interface {
	Get(ctx context.Context, chatID uuid.UUID) (*types.Chat, error)
	Create(ctx context.Context, chat *types.Chat) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Chat, error)
	// AppendEntry appends one history entry and persists synchronously,
	// returning the updated chat. Appends on one chat are serialized.
	AppendEntry(ctx context.Context, chatID uuid.UUID, entry types.ChatEntry) (*types.Chat, error)
}
