package chat

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chatdomain "github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (chatdomain.ChatRepository, sqlmock.Sqlmock, *redis.Client) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return New(gdb, cache, Logger.Noop()), mock, cache
}

func chatRows(chatID, userID uuid.UUID, history string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "history", "created_at", "updated_at", "deleted_at",
	}).AddRow(chatID.String(), userID.String(), "test chat", []byte(history), now, now, nil)
}

func TestGetPopulatesCache(t *testing.T) {
	repo, mock, _ := setupRepo(t)
	chatID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM `chats`").
		WillReturnRows(chatRows(chatID, userID, `[{"route":"Chat"}]`))

	got, err := repo.Get(context.Background(), chatID)
	require.NoError(t, err)
	assert.Equal(t, chatID, got.ID)
	assert.Equal(t, userID, got.UserID)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Chat", got.History[0]["route"])

	// second read is served from the cache, no further query expected
	again, err := repo.Get(context.Background(), chatID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	repo, mock, _ := setupRepo(t)

	mock.ExpectQuery("SELECT \\* FROM `chats`").
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, chatdomain.ErrChatNotFound)
}

func TestAppendEntryLocksRowAndSaves(t *testing.T) {
	repo, mock, cache := setupRepo(t)
	chatID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `chats` .* FOR UPDATE").
		WillReturnRows(chatRows(chatID, userID, `[{"route":"Chat"}]`))
	mock.ExpectExec("UPDATE `chats` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry := types.ChatEntry{"route": "Plan", "AIOutput": "a plan"}
	got, err := repo.AppendEntry(context.Background(), chatID, entry)
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.Equal(t, "Plan", got.History[1]["route"])

	// the refreshed snapshot is cached
	cached, err := cache.Get("chat:" + chatID.String()).Result()
	require.NoError(t, err)
	assert.Contains(t, cached, "a plan")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendEntryNotFound(t *testing.T) {
	repo, mock, _ := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `chats` .* FOR UPDATE").
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	_, err := repo.AppendEntry(context.Background(), uuid.New(), types.ChatEntry{"route": "Chat"})
	require.ErrorIs(t, err, chatdomain.ErrChatNotFound)
}
