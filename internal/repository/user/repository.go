package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/internal/types"
	"gorm.io/gorm"
)

type GormUserRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) user.UserRepository {
	return &GormUserRepo{db: db}
}

// Create implements user.UserRepository
func (g *GormUserRepo) Create(ctx context.Context, usr *types.User) error {
	entity := NewUserEntityFromDomain(usr)
	if err := g.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	usr.CreatedAt = entity.CreatedAt
	usr.UpdatedAt = entity.UpdatedAt
	return nil
}

// GetByID implements user.UserRepository
func (g *GormUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	var entity UserEntity
	if err := g.db.WithContext(ctx).Where("id = ?", userID.String()).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return entity.ToDomain()
}

// GetByEmail implements user.UserRepository
func (g *GormUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	var entity UserEntity
	if err := g.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return entity.ToDomain()
}
