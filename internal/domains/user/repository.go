package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, usr *types.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
}
