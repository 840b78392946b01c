package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/domains/query"
	"github.com/tobenna/maestro/internal/domains/routing"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
)

const maxTitleLen = 60

// DispatchHandler routes user prompts through the routing agents.
type DispatchHandler struct {
	routingService routing.RoutingService
	chatService    chat.ChatService
	queryService   query.QueryService
	logger         *Logger.Logger
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(
	routingService routing.RoutingService,
	chatService chat.ChatService,
	queryService query.QueryService,
	logger *Logger.Logger,
) *DispatchHandler {
	return &DispatchHandler{
		routingService: routingService,
		chatService:    chatService,
		queryService:   queryService,
		logger:         logger,
	}
}

// Dispatch routes one prompt
// @Summary Dispatch a prompt through a routing agent
// @Description Classify the prompt's intent, execute the chosen route and return the response envelope. Omitting chat_id starts a new conversation.
// @Tags Agents
// @Accept json
// @Produce json
// @Param name path string true "Routing agent name, or 'default'"
// @Param request body types.DispatchRequest true "Prompt to dispatch"
// @Success 200 {object} DispatchResponse "Route executed"
// @Failure 400 {object} ErrorResponse "Invalid request or agent configuration"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Failure 404 {object} ErrorResponse "Agent or chat not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /agents/{name}/dispatch [post]
func (h *DispatchHandler) Dispatch(c *gin.Context) {
	userInfo, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	var req types.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	chatID, err := h.resolveChat(c, userInfo, req)
	if err != nil {
		return // response already written
	}

	payload, err := h.routingService.Dispatch(c.Request.Context(), routing.DispatchRequest{
		AgentName: c.Param("name"),
		Prompt:    req.Prompt,
		User:      &types.User{ID: userInfo.UserID, Email: userInfo.Email},
		ChatID:    chatID,
		LLMType:   req.LLMType,
	})
	if err != nil {
		h.writeDispatchError(c, err)
		return
	}

	route, _ := payload["route"].(string)
	c.JSON(http.StatusOK, DispatchResponse{
		Route:    route,
		Response: payload,
	})
}

func (h *DispatchHandler) resolveChat(c *gin.Context, userInfo HTTPUserInfo, req types.DispatchRequest) (uuid.UUID, error) {
	if req.ChatID != "" {
		chatID, err := uuid.Parse(req.ChatID)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid chat id"})
			return uuid.Nil, err
		}
		return chatID, nil
	}

	title := req.Prompt
	if len(title) > maxTitleLen {
		title = strings.TrimSpace(title[:maxTitleLen])
	}
	newChat, err := h.chatService.CreateChat(c.Request.Context(), userInfo.UserID, title)
	if err != nil {
		h.logger.Errorf("chat creation error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return uuid.Nil, err
	}
	return newChat.ID, nil
}

func (h *DispatchHandler) writeDispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routing.ErrAgentNotFound), errors.Is(err, chat.ErrChatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, routing.ErrNoRoutingAgent),
		errors.Is(err, routing.ErrLLMTypeUnset),
		errors.Is(err, routing.ErrQueryEngineNotFound),
		errors.Is(err, routing.ErrDatasetNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, chat.ErrNotChatOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Errorf("dispatch error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// ListAgents lists the configured routing agents
// @Summary List routing agents
// @Description List every configured agent with its query engines and datasets
// @Tags Agents
// @Produce json
// @Success 200 {object} ListAgentsResponse "Configured agents"
// @Security BearerAuth
// @Router /agents [get]
func (h *DispatchHandler) ListAgents(c *gin.Context) {
	agents := h.routingService.Registry().Agents()

	infos := make([]AgentInfo, 0, len(agents))
	for _, a := range agents {
		caps := make([]string, 0, len(a.Capabilities))
		for _, cap := range a.Capabilities {
			caps = append(caps, string(cap))
		}
		engines := make(map[string]any, len(a.QueryEngines))
		for _, qe := range a.QueryEngines {
			engines[qe.Name] = qe.Description
		}
		datasets := make(map[string]any, len(a.Datasets))
		for _, ds := range a.Datasets {
			datasets[ds.Name] = map[string]any{
				"description": ds.Description,
				"tables":      ds.Tables,
			}
		}
		infos = append(infos, AgentInfo{
			Name:         a.Name,
			LLMType:      a.LLMType,
			Capabilities: caps,
			QueryEngines: engines,
			Datasets:     datasets,
		})
	}

	c.JSON(http.StatusOK, ListAgentsResponse{Agents: infos})
}

// IngestDocument stores a document under a query engine
// @Summary Ingest a document into a query engine
// @Description Chunk, embed and store a document so the engine's route can retrieve it
// @Tags Agents
// @Accept json
// @Produce json
// @Param request body IngestDocumentRequest true "Document to ingest"
// @Success 201 {object} IngestDocumentResponse "Document ingested"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /documents [post]
func (h *DispatchHandler) IngestDocument(c *gin.Context) {
	if _, ok := ExtractUserInfo(c); !ok {
		return
	}

	var req IngestDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	chunks, err := h.queryService.IngestDocument(c.Request.Context(), req.Engine, req.DocumentURL, req.Text)
	if err != nil {
		h.logger.Errorf("document ingest error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, IngestDocumentResponse{
		Message: "Document ingested",
		Chunks:  chunks,
	})
}

// RegisterRoutes registers dispatch routes behind auth
func (h *DispatchHandler) RegisterRoutes(router *gin.RouterGroup, userService user.UserService) {
	protected := router.Group("")
	protected.Use(AuthMiddleware(userService, h.logger))
	{
		protected.GET("/agents", h.ListAgents)
		protected.POST("/agents/:name/dispatch", h.Dispatch)
		protected.POST("/documents", h.IngestDocument)
	}
}
