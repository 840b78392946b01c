package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	"github.com/tobenna/maestro/pkg/assistant/router"
)

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrNotChatOwner = errors.New("chat belongs to another user")
)

const chatSystemPrompt = "You are %s, a helpful conversational assistant. " +
	"Answer the user directly and concisely."

// ChatService owns conversation records and runs the generic chat agent.
type ChatService interface {
	CreateChat(ctx context.Context, userID uuid.UUID, title string) (*types.Chat, error)
	GetChat(ctx context.Context, chatID, userID uuid.UUID) (*types.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]types.Chat, error)
	// RunAgent answers a prompt with the plain chat agent, no routing.
	RunAgent(ctx context.Context, agentName string, prompt string) (string, error)
}

type chatService struct {
	repository ChatRepository
	mux        *router.Mux
	llmID      string
	logger     *Logger.Logger
}

func New(repository ChatRepository, mux *router.Mux, llmID string, logger *Logger.Logger) ChatService {
	return &chatService{
		repository: repository,
		mux:        mux,
		llmID:      llmID,
		logger:     logger,
	}
}

// CreateChat implements ChatService.
func (c *chatService) CreateChat(ctx context.Context, userID uuid.UUID, title string) (*types.Chat, error) {
	chat := &types.Chat{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		History: []types.ChatEntry{},
	}
	if err := c.repository.Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return chat, nil
}

// GetChat implements ChatService.
func (c *chatService) GetChat(ctx context.Context, chatID, userID uuid.UUID) (*types.Chat, error) {
	chat, err := c.repository.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrNotChatOwner
	}
	return chat, nil
}

// ListChats implements ChatService.
func (c *chatService) ListChats(ctx context.Context, userID uuid.UUID) ([]types.Chat, error) {
	return c.repository.ListByUser(ctx, userID)
}

// RunAgent implements ChatService.
func (c *chatService) RunAgent(ctx context.Context, agentName string, prompt string) (string, error) {
	msgs := []adapters.ContractMessage{
		{Role: adapters.SYSTEM, Content: fmt.Sprintf(chatSystemPrompt, agentName)},
		{Role: adapters.USER, Content: prompt},
	}
	out, err := c.mux.Run(ctx, c.llmID, msgs, nil)
	if err != nil {
		return "", fmt.Errorf("chat agent %s: %w", agentName, err)
	}
	c.logger.Debugf("chat agent %s answered %d chars", agentName, len(out.Text))
	return out.Text, nil
}
