// Package segment splits run-together strings such as e-mail domains
// ("hotmail") into dictionary words ("hot", "mail").
package segment

import (
	"errors"
	"fmt"
	"math"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCacheSize is the number of split results remembered.
	DefaultCacheSize = 1024
	// minPieceLength keeps single letters out of splits; almost every letter is
	// a dictionary entry and would make any string splittable.
	minPieceLength = 2
)

// ErrInvalidCacheSize indicates a non-positive cache size.
var ErrInvalidCacheSize = errors.New("split cache size must be positive")

// Vocabulary reports whether a lowercase word is known.
type Vocabulary interface {
	Contains(word string) bool
}

// Splitter finds the split of a string into the fewest vocabulary words.
// Results are cached; a Splitter is safe for concurrent use.
type Splitter struct {
	vocabulary Vocabulary
	cache      *lru.Cache[string, []string]
}

// New creates a Splitter over vocabulary remembering up to cacheSize results.
func New(vocabulary Vocabulary, cacheSize int) (*Splitter, error) {
	if cacheSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCacheSize, cacheSize)
	}

	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create split cache: %w", err)
	}

	return &Splitter{
		vocabulary: vocabulary,
		cache:      cache,
	}, nil
}

// Split returns word itself when it is a vocabulary word, otherwise the shortest
// sequence of vocabulary words of two or more letters that spell it. It returns
// nil when no such sequence exists.
func (s *Splitter) Split(word string) []string {
	if word == "" {
		return nil
	}

	if cached, found := s.cache.Get(word); found {
		return slices.Clone(cached)
	}

	pieces := s.split(word)
	s.cache.Add(word, pieces)

	return slices.Clone(pieces)
}

func (s *Splitter) split(word string) []string {
	if s.vocabulary.Contains(word) {
		return []string{word}
	}

	// fewest[i] is the fewest pieces covering word[:i]; start[i] is where the last
	// of those pieces begins.
	fewest := make([]int, len(word)+1)
	start := make([]int, len(word)+1)

	for i := 1; i <= len(word); i++ {
		fewest[i] = math.MaxInt
	}

	for end := minPieceLength; end <= len(word); end++ {
		for begin := 0; begin <= end-minPieceLength; begin++ {
			if fewest[begin] == math.MaxInt || fewest[begin]+1 >= fewest[end] {
				continue
			}

			if s.vocabulary.Contains(word[begin:end]) {
				fewest[end] = fewest[begin] + 1
				start[end] = begin
			}
		}
	}

	if fewest[len(word)] == math.MaxInt {
		return nil
	}

	pieces := make([]string, 0, fewest[len(word)])
	for end := len(word); end > 0; end = start[end] {
		pieces = append(pieces, word[start[end]:end])
	}

	slices.Reverse(pieces)

	return pieces
}
