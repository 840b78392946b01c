package chat

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/types"
	"gorm.io/gorm"
)

// HistoryColumn stores the conversation turns as a JSON column.
type HistoryColumn []types.ChatEntry

func (h HistoryColumn) Value() (driver.Value, error) {
	if h == nil {
		h = HistoryColumn{}
	}
	return json.Marshal(h)
}

func (h *HistoryColumn) Scan(value interface{}) error {
	if value == nil {
		*h = HistoryColumn{}
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, h)
	case string:
		return json.Unmarshal([]byte(data), h)
	default:
		return fmt.Errorf("unsupported type for HistoryColumn: %T", value)
	}
}

// ChatEntity represents the database entity for Chat with GORM tags
type ChatEntity struct {
	ID        string         `gorm:"primaryKey;type:char(36);not null"`
	UserID    string         `gorm:"column:user_id;type:char(36);index;not null"`
	Title     string         `gorm:"type:varchar(255)"`
	History   HistoryColumn  `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (ChatEntity) TableName() string {
	return "chats"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (c *ChatEntity) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// ToDomain converts ChatEntity to domain Chat
func (c *ChatEntity) ToDomain() (*types.Chat, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, fmt.Errorf("chat id %q: %w", c.ID, err)
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("chat user id %q: %w", c.UserID, err)
	}
	return &types.Chat{
		ID:        id,
		UserID:    userID,
		Title:     c.Title,
		History:   c.History,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

// FromDomain converts domain Chat to ChatEntity
func (c *ChatEntity) FromDomain(chat *types.Chat) {
	c.ID = chat.ID.String()
	c.UserID = chat.UserID.String()
	c.Title = chat.Title
	c.History = chat.History
	c.CreatedAt = chat.CreatedAt
	c.UpdatedAt = chat.UpdatedAt
}

// NewChatEntityFromDomain creates a new ChatEntity from domain Chat
func NewChatEntityFromDomain(chat *types.Chat) *ChatEntity {
	entity := &ChatEntity{}
	entity.FromDomain(chat)
	return entity
}
