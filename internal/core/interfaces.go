// Package core defines the collaborator interfaces and events shared by the
// normalization service.
package core

import "context"

// ObjectStore defines the interface for interacting with a key-value blob store.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// Lexicon maps a lowercased word to its phonetic representation.
type Lexicon interface {
	Lookup(word string) (string, bool)
	Contains(word string) bool
}

// Splitter breaks a lowercased string without spaces into pronounceable
// sub-words. It returns nil when no split exists.
type Splitter interface {
	Split(word string) []string
}

// NumberSpeller renders numbers as English words. Integer and fraction are
// digit strings without separators.
type NumberSpeller interface {
	Cardinal(n uint64) string
	Ordinal(n uint64) string
	Year(n uint64) string
	Decimal(integer, fraction string) (string, error)
	Currency(integer, fraction, code string) (string, error)
}
