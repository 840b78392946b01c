package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
	"gorm.io/gorm"
)

// UserEntity represents the database entity for User with GORM tags
type UserEntity struct {
	ID        string         `gorm:"primaryKey;type:char(36);not null"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Email     string         `gorm:"uniqueIndex;type:varchar(191);not null"`
	Password  string         `gorm:"column:password_hash;type:char(60);not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserEntity) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (u *UserEntity) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// ToDomain converts UserEntity to domain User
func (u *UserEntity) ToDomain() (*types.User, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", u.ID, err)
	}
	return &types.User{
		ID:        id,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

// NewUserEntityFromDomain creates a new UserEntity from domain User
func NewUserEntityFromDomain(usr *types.User) *UserEntity {
	return &UserEntity{
		ID:        usr.ID.String(),
		Name:      usr.Name,
		Email:     usr.Email,
		Password:  usr.Password,
		CreatedAt: usr.CreatedAt,
		UpdatedAt: usr.UpdatedAt,
	}
}
