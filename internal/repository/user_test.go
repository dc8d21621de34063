package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
	"github.com/rocketscienceinc/scrabble-backend/internal/repository/storage/sqlite"
)

func newTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	storage, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, storage.Init(context.Background()))

	t.Cleanup(func() {
		_ = storage.Connection.Close()
	})

	return storage
}

func TestUserRepository_Save(t *testing.T) {
	ctx := context.Background()
	userRepo := NewUserRepository(newTestStorage(t).Connection)

	// Given: a fresh user
	user := &entity.User{Name: "alice", PasswordHash: "hash"}

	// When: saving and reading back
	require.NoError(t, userRepo.Save(ctx, user))

	found, err := userRepo.Find(ctx, "alice")

	// Then: the stored user comes back with zeroed stats
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Name)
	assert.Equal(t, "hash", found.PasswordHash)
	assert.Equal(t, 0, found.Games)
	assert.Equal(t, 0, found.Wins)
}

func TestUserRepository_Find(t *testing.T) {
	t.Run("an unknown user is not found", func(t *testing.T) {
		userRepo := NewUserRepository(newTestStorage(t).Connection)

		_, err := userRepo.Find(context.Background(), "nobody")

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestUserRepository_UpdateStats(t *testing.T) {
	ctx := context.Background()
	userRepo := NewUserRepository(newTestStorage(t).Connection)

	// Given: a saved user
	user := &entity.User{Name: "alice", PasswordHash: "hash"}
	require.NoError(t, userRepo.Save(ctx, user))

	// When: updating their stats after a game
	user.Games = 3
	user.Wins = 2
	user.BestScore = 42
	user.BestWord = "QUARTZ"
	require.NoError(t, userRepo.UpdateStats(ctx, user))

	// Then: the new values persist
	found, err := userRepo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, found.Games)
	assert.Equal(t, 2, found.Wins)
	assert.Equal(t, 42, found.BestScore)
	assert.Equal(t, "QUARTZ", found.BestWord)
}
