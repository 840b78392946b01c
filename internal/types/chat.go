package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatEntry is one turn appended to a conversation. Routes attach
// different fields, so the entry stays schemaless.
type ChatEntry map[string]any

type Chat struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Title     string      `json:"title"`
	History   []ChatEntry `json:"history"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Fields serializes the chat into a map for response embedding. With
// reformatDatetime the timestamps become RFC 3339 strings so the
// snapshot is stable across clients.
func (c *Chat) Fields(reformatDatetime bool) map[string]any {
	fields := map[string]any{
		"id":      c.ID.String(),
		"user_id": c.UserID.String(),
		"title":   c.Title,
		"history": c.History,
	}
	if reformatDatetime {
		fields["created_at"] = c.CreatedAt.Format(time.RFC3339)
		fields["updated_at"] = c.UpdatedAt.Format(time.RFC3339)
	} else {
		fields["created_at"] = c.CreatedAt
		fields["updated_at"] = c.UpdatedAt
	}
	return fields
}

// CreateChat data to open a new conversation
// @Description Chat creation body
type CreateChat struct {
	Title string `json:"title" example:"Trip planning"`
}

// DispatchRequest data to route one prompt
// @Description Prompt dispatch body
type DispatchRequest struct {
	Prompt  string `json:"prompt" binding:"required" example:"How many flights left SFO in May?"`
	ChatID  string `json:"chat_id" example:"7a6f6a1e-3f2a-4b9e-9a6e-0c1d2e3f4a5b"`
	LLMType string `json:"llm_type" example:"openai:gpt-4o-mini"`
}
