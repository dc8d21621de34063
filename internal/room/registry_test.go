package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
)

func newTestRegistry() *Registry {
	return NewRegistry(testLogger(), allowAllChecker{}, &fakeStats{}, defaultConf())
}

func TestRegistry_Create(t *testing.T) {
	t.Run("an empty id gets a generated one", func(t *testing.T) {
		registry := newTestRegistry()

		created, err := registry.Create("", VisibilityPublic)

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID())

		found, ok := registry.Find(created.ID())
		require.True(t, ok)
		assert.Same(t, created, found)
	})

	t.Run("a colliding id is rejected", func(t *testing.T) {
		registry := newTestRegistry()
		_, err := registry.Create("friday-night", VisibilityPrivate)
		require.NoError(t, err)

		_, err = registry.Create("friday-night", VisibilityPrivate)

		assert.ErrorIs(t, err, apperror.ErrRoomExists)
	})
}

func TestRegistry_Find(t *testing.T) {
	registry := newTestRegistry()

	_, ok := registry.Find("nope")

	assert.False(t, ok)
}

func TestRegistry_PublicJoinable(t *testing.T) {
	// Given: one public and one private room
	registry := newTestRegistry()
	public, err := registry.Create("open", VisibilityPublic)
	require.NoError(t, err)
	_, err = registry.Create("hidden", VisibilityPrivate)
	require.NoError(t, err)

	// When: listing joinable rooms
	joinable := registry.PublicJoinable()

	// Then: only the public waiting room shows up
	require.Len(t, joinable, 1)
	assert.Equal(t, public.ID(), joinable[0].ID())
}

func TestRegistry_Delete(t *testing.T) {
	registry := newTestRegistry()
	created, err := registry.Create("", VisibilityPublic)
	require.NoError(t, err)

	registry.Delete(created.ID())

	_, ok := registry.Find(created.ID())
	assert.False(t, ok)
}

func TestRegistry_DeleteAfter(t *testing.T) {
	registry := newTestRegistry()
	created, err := registry.Create("", VisibilityPublic)
	require.NoError(t, err)

	registry.DeleteAfter(created.ID(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := registry.Find(created.ID())
		return !ok
	}, time.Second, 5*time.Millisecond)
}
