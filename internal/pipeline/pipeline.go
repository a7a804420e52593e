// Package pipeline composes normalization and pronunciation mapping: raw text is
// normalized into speakable words, and each word is paired with its
// pronunciation.
package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/book-expert/nsw-normalizer/internal/pronounce"
	"github.com/vmihailenco/msgpack/v5"
)

const pairFormat = "%s\t%s\n"

// TextNormalizer rewrites raw text into spoken form.
type TextNormalizer interface {
	Normalize(text string) (string, error)
}

// WordPronouncer maps words to pronunciations one-for-one.
type WordPronouncer interface {
	PronounceWords(words []string) []string
}

// Pair is a normalized word with its pronunciation.
type Pair struct {
	Word          string `json:"word"          msgpack:"word"`
	Pronunciation string `json:"pronunciation" msgpack:"pronunciation"`
}

// Result is the output of one pipeline run.
type Result struct {
	// Normalized is the spoken form, words separated by single spaces.
	Normalized string `json:"normalized" msgpack:"normalized"`
	// Pronunciation holds one entry per normalized word joined by
	// pronounce.Separator.
	Pronunciation string `json:"pronunciation" msgpack:"pronunciation"`
	Pairs         []Pair `json:"pairs"         msgpack:"pairs"`
}

// Pipeline runs the two stages in order. The mapper never calls back into the
// normalizer.
type Pipeline struct {
	normalizer TextNormalizer
	pronouncer WordPronouncer
}

// New creates a Pipeline.
func New(normalizer TextNormalizer, pronouncer WordPronouncer) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		pronouncer: pronouncer,
	}
}

// Run normalizes text and maps the result to pronunciations.
func (p *Pipeline) Run(text string) (Result, error) {
	normalized, err := p.normalizer.Normalize(text)
	if err != nil {
		return Result{}, fmt.Errorf("failed to normalize text: %w", err)
	}

	words := strings.Fields(normalized)
	pronunciations := p.pronouncer.PronounceWords(words)

	pairs := make([]Pair, len(words))
	for i, word := range words {
		pairs[i] = Pair{Word: word, Pronunciation: pronunciations[i]}
	}

	return Result{
		Normalized:    normalized,
		Pronunciation: strings.Join(pronunciations, pronounce.Separator),
		Pairs:         pairs,
	}, nil
}

// WritePairs writes one "word<TAB>pronunciation" line per pair.
func WritePairs(w io.Writer, pairs []Pair) error {
	buffered := bufio.NewWriter(w)

	for _, pair := range pairs {
		_, err := fmt.Fprintf(buffered, pairFormat, pair.Word, pair.Pronunciation)
		if err != nil {
			return fmt.Errorf("failed to write pair %q: %w", pair.Word, err)
		}
	}

	err := buffered.Flush()
	if err != nil {
		return fmt.Errorf("failed to flush pairs: %w", err)
	}

	return nil
}

// Encode serializes a result with msgpack.
func Encode(result Result) ([]byte, error) {
	data, err := msgpack.Marshal(&result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return data, nil
}

// Decode parses a result produced by Encode.
func Decode(data []byte) (Result, error) {
	var result Result

	err := msgpack.Unmarshal(data, &result)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode result: %w", err)
	}

	return result, nil
}
