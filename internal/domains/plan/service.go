package plan

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	"github.com/tobenna/maestro/pkg/assistant/router"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrNotPlanOwner = errors.New("plan belongs to another user")
	ErrEmptyPlan    = errors.New("model produced no plan steps")
)

const planSystemPrompt = "You are %s, a planning assistant. Break the task below " +
	"into a short numbered list of concrete steps. Output only the numbered steps, " +
	"one per line."

// stepPattern matches "1. do a thing" and "2) do another".
var stepPattern = regexp.MustCompile(`(?m)^\s*(\d+)[.)]\s+(.+)$`)

type PlanRepository interface {
	Create(ctx context.Context, p *types.Plan) error
	Get(ctx context.Context, planID uuid.UUID) (*types.Plan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Plan, error)
}

// PlanService turns a task prompt into a persisted step plan.
type PlanService interface {
	GeneratePlan(ctx context.Context, agentName string, prompt string, userID uuid.UUID) (string, *types.Plan, error)
	GetPlan(ctx context.Context, planID, userID uuid.UUID) (*types.Plan, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]types.Plan, error)
}

type planService struct {
	repository PlanRepository
	mux        *router.Mux
	llmID      string
	logger     *Logger.Logger
}

func New(repository PlanRepository, mux *router.Mux, llmID string, logger *Logger.Logger) PlanService {
	return &planService{
		repository: repository,
		mux:        mux,
		llmID:      llmID,
		logger:     logger,
	}
}

// GeneratePlan implements PlanService.
func (p *planService) GeneratePlan(ctx context.Context, agentName string, prompt string, userID uuid.UUID) (string, *types.Plan, error) {
	msgs := []adapters.ContractMessage{
		{Role: adapters.SYSTEM, Content: fmt.Sprintf(planSystemPrompt, agentName)},
		{Role: adapters.USER, Content: prompt},
	}

	out, err := p.mux.Run(ctx, p.llmID, msgs, nil)
	if err != nil {
		return "", nil, fmt.Errorf("plan agent %s: %w", agentName, err)
	}

	steps := ParseSteps(out.Text)
	if len(steps) == 0 {
		return "", nil, ErrEmptyPlan
	}

	userPlan := &types.Plan{
		ID:        uuid.New(),
		UserID:    userID,
		AgentName: agentName,
		Task:      prompt,
		Steps:     steps,
	}
	if err := p.repository.Create(ctx, userPlan); err != nil {
		return "", nil, err
	}

	p.logger.Infof("plan %s created with %d steps", userPlan.ID, len(steps))
	return out.Text, userPlan, nil
}

// GetPlan implements PlanService.
func (p *planService) GetPlan(ctx context.Context, planID, userID uuid.UUID) (*types.Plan, error) {
	userPlan, err := p.repository.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if userPlan.UserID != userID {
		return nil, ErrNotPlanOwner
	}
	return userPlan, nil
}

// ListPlans implements PlanService.
func (p *planService) ListPlans(ctx context.Context, userID uuid.UUID) ([]types.Plan, error) {
	return p.repository.ListByUser(ctx, userID)
}

// ParseSteps extracts numbered steps from model output, keeping the
// model's numbering order.
func ParseSteps(output string) []types.PlanStep {
	matches := stepPattern.FindAllStringSubmatch(output, -1)
	steps := make([]types.PlanStep, 0, len(matches))
	for _, m := range matches {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		steps = append(steps, types.PlanStep{
			Index:       idx,
			Description: strings.TrimSpace(m[2]),
		})
	}
	return steps
}
