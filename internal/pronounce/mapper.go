// Package pronounce maps normalized words to phonetic representations.
package pronounce

import (
	"strings"

	"github.com/book-expert/nsw-normalizer/internal/core"
)

// Separator joins per-word pronunciations. Phonetic representations contain single
// spaces, so a double space keeps word boundaries recoverable.
const Separator = "  "

const apostrophe = "'"

// Mapper looks words up in a lexicon.
type Mapper struct {
	lexicon core.Lexicon
}

// New creates a Mapper backed by lexicon.
func New(lexicon core.Lexicon) *Mapper {
	return &Mapper{lexicon: lexicon}
}

// Pronounce returns one entry per whitespace-separated word of text, joined by
// Separator. Anything from an apostrophe on is ignored for the lookup
// ("doctor's" is looked up as "doctor"). Words missing from the lexicon are
// emitted unchanged.
func (m *Mapper) Pronounce(text string) string {
	return strings.Join(m.PronounceWords(strings.Fields(text)), Separator)
}

// PronounceWords maps each word to its pronunciation.
func (m *Mapper) PronounceWords(words []string) []string {
	pronunciations := make([]string, 0, len(words))

	for _, word := range words {
		pronunciations = append(pronunciations, m.pronounceWord(word))
	}

	return pronunciations
}

func (m *Mapper) pronounceWord(word string) string {
	key, _, _ := strings.Cut(word, apostrophe)

	if phonemes, found := m.lexicon.Lookup(strings.ToLower(key)); found {
		return phonemes
	}

	return word
}

// Split recovers the per-word entries of a Pronounce result.
func Split(pronunciation string) []string {
	if pronunciation == "" {
		return nil
	}

	return strings.Split(pronunciation, Separator)
}
