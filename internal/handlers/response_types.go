package handlers

import (
	"github.com/tobenna/maestro/internal/domains/routing"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/internal/types"
)

// Response wrapper types for Swagger documentation

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// RegisterResponse represents the response for user registration
type RegisterResponse struct {
	Message string     `json:"message" example:"User registered successfully"`
	User    types.User `json:"user"`
}

// LoginResponse represents the response for user login
type LoginResponse struct {
	Message string          `json:"message" example:"Login successful"`
	User    types.User      `json:"user"`
	Tokens  user.AuthTokens `json:"tokens"`
}

// DispatchResponse wraps one routed prompt's envelope
type DispatchResponse struct {
	Route    string           `json:"route" example:"Query"`
	Response routing.Envelope `json:"response"`
}

// ChatResponse represents the response for a single conversation
type ChatResponse struct {
	Chat types.Chat `json:"chat"`
}

// CreateChatResponse represents the response for chat creation
type CreateChatResponse struct {
	Message string     `json:"message" example:"Chat created successfully"`
	Chat    types.Chat `json:"chat"`
}

// ListChatsResponse represents the response for listing conversations
type ListChatsResponse struct {
	Chats []types.Chat `json:"chats"`
}

// PlanResponse represents the response for a single plan
type PlanResponse struct {
	Plan types.Plan `json:"plan"`
}

// ListPlansResponse represents the response for listing plans
type ListPlansResponse struct {
	Plans []types.Plan `json:"plans"`
}

// AgentInfo describes one routing agent and its reachable routes
type AgentInfo struct {
	Name         string         `json:"name" example:"Router"`
	LLMType      string         `json:"llm_type" example:"openai:gpt-4o-mini"`
	Capabilities []string       `json:"capabilities"`
	QueryEngines map[string]any `json:"query_engines"`
	Datasets     map[string]any `json:"datasets"`
}

// ListAgentsResponse represents the response for listing agents
type ListAgentsResponse struct {
	Agents []AgentInfo `json:"agents"`
}

// IngestDocumentRequest represents the request to add a document to a
// query engine
type IngestDocumentRequest struct {
	Engine      string `json:"engine" binding:"required" example:"flights"`
	DocumentURL string `json:"document_url" example:"https://example.com/faq"`
	Text        string `json:"text" binding:"required"`
}

// IngestDocumentResponse represents the response for document ingest
type IngestDocumentResponse struct {
	Message string `json:"message" example:"Document ingested"`
	Chunks  int    `json:"chunks" example:"4"`
}
