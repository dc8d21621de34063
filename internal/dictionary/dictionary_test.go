package dictionary

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingCache struct {
	values map[string]bool
	hits   int
	sets   int
}

func newCountingCache() *countingCache {
	return &countingCache{values: make(map[string]bool)}
}

func (that *countingCache) Get(word string) (bool, bool) {
	valid, ok := that.values[word]
	if ok {
		that.hits++
	}

	return valid, ok
}

func (that *countingCache) Set(word string, valid bool) {
	that.sets++
	that.values[word] = valid
}

func TestWordList_IsValid(t *testing.T) {
	t.Run("looks words up case-insensitively", func(t *testing.T) {
		// Given: a word list with mixed-case entries
		wordList := NewWordList(testLogger(), []string{"cat", "Dog"}, NoopCache{})

		// Then: any casing matches
		assert.True(t, wordList.IsValid("CAT"))
		assert.True(t, wordList.IsValid("cat"))
		assert.True(t, wordList.IsValid("dOg"))
		assert.False(t, wordList.IsValid("bird"))
	})

	t.Run("memoizes answers in the cache", func(t *testing.T) {
		// Given: a word list backed by a counting cache
		cache := newCountingCache()
		wordList := NewWordList(testLogger(), []string{"cat"}, cache)

		// When: asking the same word twice
		require.True(t, wordList.IsValid("cat"))
		require.True(t, wordList.IsValid("cat"))

		// Then: the second answer came from the cache
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, cache.hits)

		// Then: negative answers are cached too
		require.False(t, wordList.IsValid("bird"))
		require.False(t, wordList.IsValid("bird"))
		assert.Equal(t, 2, cache.sets)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads one word per line and skips blanks", func(t *testing.T) {
		// Given: a word list file with blank lines and whitespace
		path := filepath.Join(t.TempDir(), "words.txt")
		require.NoError(t, os.WriteFile(path, []byte("cat\n\n  dog  \nOWL\n"), 0o600))

		// When: loading it
		wordList, err := Load(testLogger(), path, NoopCache{})
		require.NoError(t, err)

		// Then: all three words are known
		assert.True(t, wordList.IsValid("CAT"))
		assert.True(t, wordList.IsValid("DOG"))
		assert.True(t, wordList.IsValid("owl"))
		assert.False(t, wordList.IsValid(""))
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		_, err := Load(testLogger(), filepath.Join(t.TempDir(), "nope.txt"), NoopCache{})

		assert.Error(t, err)
	})
}
