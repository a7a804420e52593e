// Package lexicon loads pronunciation dictionaries in the CMU Pronouncing
// Dictionary format and answers word-to-phoneme lookups.
package lexicon

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	commentPrefix     = "#"
	cmuCommentPrefix  = ";;;"
	inlineComment     = " #"
	variantOpen       = "("
	zstdExtension     = ".zst"
	phonemeSeparator  = " "
	minimumLineFields = 2
)

var (
	// ErrMalformedEntry indicates a dictionary line without phonemes.
	ErrMalformedEntry = errors.New("malformed dictionary entry")
	// ErrEmptyDictionary indicates a dictionary source with no entries.
	ErrEmptyDictionary = errors.New("dictionary has no entries")
)

//go:embed seed.dict
var seedDictionary string

// Dictionary maps lowercase words to one or more phonetic representations. It is
// filled once when loaded and only read afterwards.
type Dictionary struct {
	entries map[string][]string // word -> alternative pronunciations
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string][]string),
	}
}

// Default returns the small dictionary compiled into the binary.
func Default() *Dictionary {
	dictionary, err := Load(strings.NewReader(seedDictionary))
	if err != nil {
		panic(fmt.Sprintf("embedded dictionary: %v", err))
	}

	return dictionary
}

// Add records a pronunciation for word. Later calls add alternatives.
func (d *Dictionary) Add(word string, phonemes []string) {
	key := strings.ToLower(word)
	d.entries[key] = append(d.entries[key], strings.Join(phonemes, phonemeSeparator))
}

// Load reads a dictionary with one entry per line:
//
//	word  PH1 PH2 PH3
//	word(2)  PH1 PH4
//
// Words are case-folded, numbered variants are kept as alternatives, and lines
// starting with "#" or ";;;" are comments.
func Load(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) || strings.HasPrefix(line, cmuCommentPrefix) {
			continue
		}

		if before, _, found := strings.Cut(line, inlineComment); found {
			line = before
		}

		fields := strings.Fields(line)
		if len(fields) < minimumLineFields {
			return nil, fmt.Errorf("line %d: %w: %q", lineNum, ErrMalformedEntry, line)
		}

		word, _, _ := strings.Cut(fields[0], variantOpen)
		d.Add(word, fields[1:])
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	if len(d.entries) == 0 {
		return nil, ErrEmptyDictionary
	}

	return d, nil
}

// LoadFile opens a dictionary file. Files ending in ".zst" are decompressed
// while reading.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %q: %w", path, err)
	}
	defer f.Close()

	if filepath.Ext(path) != zstdExtension {
		return Load(f)
	}

	zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to open zstd dictionary %q: %w", path, err)
	}
	defer zr.Close()

	return Load(zr)
}

// Lookup returns the first pronunciation of word.
func (d *Dictionary) Lookup(word string) (string, bool) {
	variants := d.entries[word]
	if len(variants) == 0 {
		return "", false
	}

	return variants[0], true
}

// Contains reports whether word has a pronunciation.
func (d *Dictionary) Contains(word string) bool {
	_, found := d.entries[word]

	return found
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
