package database

import (
	"github.com/tobenna/maestro/internal/repository/chat"
	"github.com/tobenna/maestro/internal/repository/document"
	"github.com/tobenna/maestro/internal/repository/plan"
	"github.com/tobenna/maestro/internal/repository/user"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.UserEntity{},
		&chat.ChatEntity{},
		&plan.PlanEntity{},
		&document.DocumentEntity{},
	)
}
