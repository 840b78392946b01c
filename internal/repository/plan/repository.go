package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/plan"
	"github.com/tobenna/maestro/internal/types"
	"gorm.io/gorm"
)

type GormPlanRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) plan.PlanRepository {
	return &GormPlanRepo{db: db}
}

// Create implements plan.PlanRepository
func (g *GormPlanRepo) Create(ctx context.Context, p *types.Plan) error {
	entity := NewPlanEntityFromDomain(p)
	if err := g.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	p.CreatedAt = entity.CreatedAt
	p.UpdatedAt = entity.UpdatedAt
	return nil
}

// Get implements plan.PlanRepository
func (g *GormPlanRepo) Get(ctx context.Context, planID uuid.UUID) (*types.Plan, error) {
	var entity PlanEntity
	if err := g.db.WithContext(ctx).Where("id = ?", planID.String()).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return entity.ToDomain()
}

// ListByUser implements plan.PlanRepository
func (g *GormPlanRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Plan, error) {
	var entities []PlanEntity
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]types.Plan, 0, len(entities))
	for _, entity := range entities {
		domain, err := entity.ToDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, *domain)
	}
	return plans, nil
}
