package plan

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
	"gorm.io/gorm"
)

// StepsColumn stores plan steps as a JSON column.
type StepsColumn []types.PlanStep

func (s StepsColumn) Value() (driver.Value, error) {
	if s == nil {
		s = StepsColumn{}
	}
	return json.Marshal(s)
}

func (s *StepsColumn) Scan(value interface{}) error {
	if value == nil {
		*s = StepsColumn{}
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, s)
	case string:
		return json.Unmarshal([]byte(data), s)
	default:
		return fmt.Errorf("unsupported type for StepsColumn: %T", value)
	}
}

// PlanEntity represents the database entity for Plan with GORM tags
type PlanEntity struct {
	ID        string         `gorm:"primaryKey;type:char(36);not null"`
	UserID    string         `gorm:"column:user_id;type:char(36);index;not null"`
	AgentName string         `gorm:"column:agent_name;type:varchar(255);not null"`
	Task      string         `gorm:"type:text"`
	Steps     StepsColumn    `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (PlanEntity) TableName() string {
	return "user_plans"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (p *PlanEntity) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ToDomain converts PlanEntity to domain Plan
func (p *PlanEntity) ToDomain() (*types.Plan, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("plan id %q: %w", p.ID, err)
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return nil, fmt.Errorf("plan user id %q: %w", p.UserID, err)
	}
	return &types.Plan{
		ID:        id,
		UserID:    userID,
		AgentName: p.AgentName,
		Task:      p.Task,
		Steps:     p.Steps,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// NewPlanEntityFromDomain creates a new PlanEntity from domain Plan
func NewPlanEntityFromDomain(plan *types.Plan) *PlanEntity {
	return &PlanEntity{
		ID:        plan.ID.String(),
		UserID:    plan.UserID.String(),
		AgentName: plan.AgentName,
		Task:      plan.Task,
		Steps:     plan.Steps,
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
}
