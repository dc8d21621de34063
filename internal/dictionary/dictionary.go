package dictionary

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Checker answers case-insensitive membership tests over the legal word
// list, memoizing prior answers.
type Checker interface {
	IsValid(word string) bool
}

// Cache memoizes dictionary answers. The second Get return reports
// whether the answer was cached.
type Cache interface {
	Get(word string) (valid bool, ok bool)
	Set(word string, valid bool)
}

// NoopCache caches nothing. Used when no redis is configured and in
// tests.
type NoopCache struct{}

func (NoopCache) Get(string) (bool, bool) { return false, false }

func (NoopCache) Set(string, bool) {}

// WordList is a file-backed dictionary. Lookups normalize to upper case
// and consult the cache before the word set.
type WordList struct {
	logger *slog.Logger
	words  map[string]struct{}
	cache  Cache
}

// Load reads a word list, one word per line. Empty lines are skipped.
func Load(logger *slog.Logger, path string, cache Cache) (*WordList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open word list: %w", err)
	}
	defer file.Close()

	words := make(map[string]struct{})

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read word list: %w", err)
	}

	logger.Info("word list loaded", "path", path, "words", len(words))

	return &WordList{
		logger: logger.With("component", "dictionary"),
		words:  words,
		cache:  cache,
	}, nil
}

// NewWordList builds a dictionary from an in-memory word set.
func NewWordList(logger *slog.Logger, words []string, cache Cache) *WordList {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[strings.ToUpper(word)] = struct{}{}
	}

	return &WordList{
		logger: logger.With("component", "dictionary"),
		words:  set,
		cache:  cache,
	}
}

func (that *WordList) IsValid(word string) bool {
	word = strings.ToUpper(word)

	if valid, ok := that.cache.Get(word); ok {
		return valid
	}

	_, valid := that.words[word]
	that.cache.Set(word, valid)

	return valid
}
