package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTile(t *testing.T) {
	t.Run("letters carry their face value", func(t *testing.T) {
		assert.Equal(t, 1, NewTile('A').Points)
		assert.Equal(t, 4, NewTile('C').Points)
		assert.Equal(t, 10, NewTile('Q').Points)
	})

	t.Run("wildcards score zero", func(t *testing.T) {
		tile := NewTile(WildcardChar)

		assert.True(t, tile.Wildcard)
		assert.Equal(t, 0, tile.Points)
	})
}

func TestTile_Convert(t *testing.T) {
	t.Run("a converted wildcard keeps scoring zero", func(t *testing.T) {
		// Given: a wildcard tile
		tile := NewTile(WildcardChar)

		// When: converting it to Q
		converted := tile.Convert('Q')

		// Then: it reads as Q but is worth nothing
		require.Equal(t, 'Q', converted.Letter)
		assert.Equal(t, 0, converted.Points)
		assert.False(t, converted.Wildcard)
	})

	t.Run("a regular tile does not convert", func(t *testing.T) {
		tile := NewTile('A')

		converted := tile.Convert('Q')

		assert.Equal(t, 'A', converted.Letter)
		assert.Equal(t, 1, converted.Points)
	})
}
