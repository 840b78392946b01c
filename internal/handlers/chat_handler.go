package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
)

// ChatHandler handles conversation HTTP requests
type ChatHandler struct {
	chatService chat.ChatService
	logger      *Logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService chat.ChatService, logger *Logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// CreateChat opens a new conversation
// @Summary Create a conversation
// @Description Create an empty conversation to dispatch prompts into
// @Tags Chats
// @Accept json
// @Produce json
// @Param request body types.CreateChat true "Chat creation data"
// @Success 201 {object} CreateChatResponse "Chat created successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /chats [post]
func (h *ChatHandler) CreateChat(c *gin.Context) {
	userInfo, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	var req types.CreateChat
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	newChat, err := h.chatService.CreateChat(c.Request.Context(), userInfo.UserID, req.Title)
	if err != nil {
		h.logger.Errorf("chat creation error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, CreateChatResponse{
		Message: "Chat created successfully",
		Chat:    *newChat,
	})
}

// GetChat fetches one conversation with its history
// @Summary Get a conversation
// @Description Fetch a conversation and its full history
// @Tags Chats
// @Produce json
// @Param id path string true "Chat ID"
// @Success 200 {object} ChatResponse "Conversation"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Failure 403 {object} ErrorResponse "Chat belongs to another user"
// @Failure 404 {object} ErrorResponse "Chat not found"
// @Security BearerAuth
// @Router /chats/{id} [get]
func (h *ChatHandler) GetChat(c *gin.Context) {
	userInfo, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid chat id"})
		return
	}

	found, err := h.chatService.GetChat(c.Request.Context(), chatID, userInfo.UserID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrChatNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Chat not found"})
		case errors.Is(err, chat.ErrNotChatOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Chat belongs to another user"})
		default:
			h.logger.Errorf("chat fetch error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Chat: *found})
}

// ListChats lists the caller's conversations
// @Summary List conversations
// @Description List all conversations of the authenticated user
// @Tags Chats
// @Produce json
// @Success 200 {object} ListChatsResponse "Conversations"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Security BearerAuth
// @Router /chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	userInfo, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	chats, err := h.chatService.ListChats(c.Request.Context(), userInfo.UserID)
	if err != nil {
		h.logger.Errorf("chat list error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, ListChatsResponse{Chats: chats})
}

// RegisterRoutes registers chat routes behind auth
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, userService user.UserService) {
	protected := router.Group("/chats")
	protected.Use(AuthMiddleware(userService, h.logger))
	{
		protected.POST("", h.CreateChat)
		protected.GET("", h.ListChats)
		protected.GET("/:id", h.GetChat)
	}
}
