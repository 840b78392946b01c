package types

import (
	"time"

	"github.com/google/uuid"
)

type PlanStep struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

type Plan struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	AgentName string     `json:"agent_name"`
	Task      string     `json:"task"`
	Steps     []PlanStep `json:"steps"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Fields serializes the plan for response embedding, mirroring
// Chat.Fields semantics.
func (p *Plan) Fields(reformatDatetime bool) map[string]any {
	fields := map[string]any{
		"id":         p.ID.String(),
		"user_id":    p.UserID.String(),
		"agent_name": p.AgentName,
		"task":       p.Task,
		"steps":      p.Steps,
	}
	if reformatDatetime {
		fields["created_at"] = p.CreatedAt.Format(time.RFC3339)
		fields["updated_at"] = p.UpdatedAt.Format(time.RFC3339)
	} else {
		fields["created_at"] = p.CreatedAt
		fields["updated_at"] = p.UpdatedAt
	}
	return fields
}
