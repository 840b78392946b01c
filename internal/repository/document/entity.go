package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/database/dbtypes"
	"gorm.io/gorm"
)

// DocumentEntity is one embedded chunk of a source document, owned by
// a query engine.
type DocumentEntity struct {
	ID          string          `gorm:"primaryKey;type:char(36);not null"`
	EngineName  string          `gorm:"column:engine_name;type:varchar(191);index;not null"`
	DocumentURL string          `gorm:"column:document_url;type:varchar(2048)"`
	Chunk       string          `gorm:"type:text;not null"`
	Embedding   dbtypes.XVector `gorm:"column:embedding;type:vector(1024)"`
	CreatedAt   time.Time       `gorm:"autoCreateTime(3)"`
}

// TableName returns the table name for GORM
func (DocumentEntity) TableName() string {
	return "document_chunks"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (d *DocumentEntity) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
