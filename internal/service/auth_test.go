package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

type memoryUserRepo struct {
	users map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*entity.User)}
}

func (that *memoryUserRepo) Save(_ context.Context, user *entity.User) error {
	that.users[user.Name] = user
	return nil
}

func (that *memoryUserRepo) Find(_ context.Context, name string) (*entity.User, error) {
	user, ok := that.users[name]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	return user, nil
}

func (that *memoryUserRepo) UpdateStats(_ context.Context, user *entity.User) error {
	that.users[user.Name] = user
	return nil
}

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	t.Run("stores a hashed password and returns a token", func(t *testing.T) {
		// Given: an empty user store
		userRepo := newMemoryUserRepo()
		auth := NewAuthService(userRepo, testSecret)

		// When: alice registers
		token, err := auth.Register(context.Background(), "alice", "hunter2")
		require.NoError(t, err)

		// Then: the token carries her name and verifies against the secret
		parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "alice", claims["name"])

		// Then: the stored password is not the plain text
		stored := userRepo.users["alice"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "hunter2", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		userRepo := newMemoryUserRepo()
		auth := NewAuthService(userRepo, testSecret)

		_, err := auth.Register(context.Background(), "alice", "hunter2")
		require.NoError(t, err)

		_, err = auth.Register(context.Background(), "alice", "other")

		assert.ErrorIs(t, err, apperror.ErrUserExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("accepts the right password", func(t *testing.T) {
		userRepo := newMemoryUserRepo()
		auth := NewAuthService(userRepo, testSecret)
		_, err := auth.Register(context.Background(), "alice", "hunter2")
		require.NoError(t, err)

		token, err := auth.Login(context.Background(), "alice", "hunter2")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		userRepo := newMemoryUserRepo()
		auth := NewAuthService(userRepo, testSecret)
		_, err := auth.Register(context.Background(), "alice", "hunter2")
		require.NoError(t, err)

		_, err = auth.Login(context.Background(), "alice", "nope")

		assert.ErrorIs(t, err, apperror.ErrWrongPassword)
	})

	t.Run("rejects an unknown user", func(t *testing.T) {
		auth := NewAuthService(newMemoryUserRepo(), testSecret)

		_, err := auth.Login(context.Background(), "ghost", "whatever")

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
