package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/plan"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/pkg/Logger"
)

// PlanHandler serves plans created by the Plan route
type PlanHandler struct {
	planService plan.PlanService
	logger      *Logger.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService plan.PlanService, logger *Logger.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, logger: logger}
}

// GetPlan fetches one stored plan
// @Summary Get a plan
// @Description Fetch a stored plan with its steps
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} PlanResponse "Plan"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Failure 403 {object} ErrorResponse "Plan belongs to another user"
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userInfo, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid plan id"})
		return
	}

	found, err := h.planService.GetPlan(c.Request.Context(), planID, userInfo.UserID)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Plan not found"})
		case errors.Is(err, plan.ErrNotPlanOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Plan belongs to another user"})
		default:
			h.logger.Errorf("plan fetch error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, PlanResponse{Plan: *found})
}

// ListPlans lists the caller's plans
// @Summary List plans
// @Description List all plans of the authenticated user
// @Tags Plans
// @Produce json
// @Success 200 {object} ListPlansResponse "Plans"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Security BearerAuth
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userInfo, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userInfo.UserID)
	if err != nil {
		h.logger.Errorf("plan list error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, ListPlansResponse{Plans: plans})
}

// RegisterRoutes registers plan routes behind auth
func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup, userService user.UserService) {
	protected := router.Group("/plans")
	protected.Use(AuthMiddleware(userService, h.logger))
	{
		protected.GET("", h.ListPlans)
		protected.GET("/:id", h.GetPlan)
	}
}
