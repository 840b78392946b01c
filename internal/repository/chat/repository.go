package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const chatCacheTTL = 10 * time.Minute

type GormChatRepo struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *Logger.Logger
}

func New(db *gorm.DB, cache *redis.Client, logger *Logger.Logger) chat.ChatRepository {
	return &GormChatRepo{db: db, cache: cache, logger: logger}
}

func cacheKey(chatID uuid.UUID) string {
	return "chat:" + chatID.String()
}

// Get implements chat.ChatRepository
func (g *GormChatRepo) Get(ctx context.Context, chatID uuid.UUID) (*types.Chat, error) {
	if cached := g.fromCache(chatID); cached != nil {
		return cached, nil
	}

	var entity ChatEntity
	if err := g.db.WithContext(ctx).Where("id = ?", chatID.String()).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	domain, err := entity.ToDomain()
	if err != nil {
		return nil, err
	}
	g.toCache(domain)
	return domain, nil
}

// Create implements chat.ChatRepository
func (g *GormChatRepo) Create(ctx context.Context, c *types.Chat) error {
	entity := NewChatEntityFromDomain(c)
	if err := g.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	c.CreatedAt = entity.CreatedAt
	c.UpdatedAt = entity.UpdatedAt
	g.toCache(c)
	return nil
}

// ListByUser implements chat.ChatRepository
func (g *GormChatRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Chat, error) {
	var entities []ChatEntity
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("updated_at DESC").
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	chats := make([]types.Chat, 0, len(entities))
	for _, entity := range entities {
		domain, err := entity.ToDomain()
		if err != nil {
			return nil, err
		}
		chats = append(chats, *domain)
	}
	return chats, nil
}

// AppendEntry implements chat.ChatRepository. The row lock serializes
// concurrent appends on the same chat; each append sees the latest
// history.
func (g *GormChatRepo) AppendEntry(ctx context.Context, chatID uuid.UUID, entry types.ChatEntry) (*types.Chat, error) {
	var entity ChatEntity

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", chatID.String()).
			First(&entity).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return chat.ErrChatNotFound
			}
			return fmt.Errorf("failed to get chat for append: %w", err)
		}

		entity.History = append(entity.History, entry)
		return tx.Model(&entity).Update("history", entity.History).Error
	})
	if err != nil {
		return nil, err
	}

	domain, err := entity.ToDomain()
	if err != nil {
		return nil, err
	}
	g.toCache(domain)
	return domain, nil
}

func (g *GormChatRepo) fromCache(chatID uuid.UUID) *types.Chat {
	if g.cache == nil {
		return nil
	}
	raw, err := g.cache.Get(cacheKey(chatID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.logger.Warnf("chat cache get: %v", err)
		}
		return nil
	}
	var c types.Chat
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		g.logger.Warnf("chat cache decode: %v", err)
		return nil
	}
	return &c
}

func (g *GormChatRepo) toCache(c *types.Chat) {
	if g.cache == nil {
		return
	}
	raw, err := json.Marshal(c)
	if err != nil {
		g.logger.Warnf("chat cache encode: %v", err)
		return
	}
	if err := g.cache.Set(cacheKey(c.ID), raw, chatCacheTTL).Err(); err != nil {
		g.logger.Warnf("chat cache set: %v", err)
	}
}
