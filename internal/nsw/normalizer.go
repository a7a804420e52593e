// Package nsw rewrites non-standard words (dates, currency, times, acronyms,
// e-mail addresses, years and numbers) into the words a speaker would say.
//
// Every whitespace-delimited token is assigned exactly one Category by trying a
// fixed, ordered list of recognizers; the first match selects the rewrite. Tokens
// nothing recognizes are ordinary words and pass through unchanged.
package nsw

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/book-expert/nsw-normalizer/internal/core"
	"github.com/book-expert/nsw-normalizer/internal/numwords"
	"golang.org/x/text/unicode/norm"
)

const (
	// asciiPunctuation is stripped from token edges. "$" is kept as it marks currency.
	asciiPunctuation = "!\"#%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	hyphen           = "-"
	abbreviationEnd  = "."
)

// finalReplacer splits hyphenated number words and drops grouping commas.
var finalReplacer = strings.NewReplacer("-", " ", ",", "")

// Normalizer classifies tokens and rewrites them into spoken form. It holds no
// mutable state, so one Normalizer may serve concurrent callers.
type Normalizer struct {
	tables              *Tables
	lexicon             core.Lexicon
	splitter            core.Splitter
	speller             core.NumberSpeller
	numerals            NumeralParser
	abbreviationPattern *regexp.Regexp
	rules               []rule
}

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithTables replaces the default abbreviation, month and domain tables.
func WithTables(tables *Tables) Option {
	return func(n *Normalizer) {
		n.tables = tables
	}
}

// WithSpeller replaces the number-to-words converter.
func WithSpeller(speller core.NumberSpeller) Option {
	return func(n *Normalizer) {
		n.speller = speller
	}
}

// WithNumeralParser replaces the US numeral convention.
func WithNumeralParser(parser NumeralParser) Option {
	return func(n *Normalizer) {
		n.numerals = parser
	}
}

// New creates a Normalizer. The lexicon decides which capital-letter sequences
// are words, and the splitter breaks e-mail domains into words.
func New(lexicon core.Lexicon, splitter core.Splitter, opts ...Option) *Normalizer {
	normalizer := &Normalizer{
		tables:              DefaultTables(),
		lexicon:             lexicon,
		splitter:            splitter,
		speller:             numwords.New(),
		numerals:            USNumeralParser{},
		abbreviationPattern: regexp.MustCompile(abbreviationRegexPattern),
		rules:               newRules(),
	}

	for _, opt := range opts {
		opt(normalizer)
	}

	return normalizer
}

// Normalize returns the spoken form of text as space-separated words. The result
// contains no hyphens or commas. An error is returned only when a numeric token
// cannot be parsed or spelled.
func (n *Normalizer) Normalize(text string) (string, error) {
	var words []string

	for _, token := range strings.Fields(norm.NFC.String(text)) {
		spoken, err := n.normalizeToken(token)
		if err != nil {
			return "", fmt.Errorf("normalize %q: %w", token, err)
		}

		words = append(words, spoken...)
	}

	return strings.Join(strings.Fields(finalReplacer.Replace(strings.Join(words, " "))), " "), nil
}

// Classify reports the category of a single token as a whole. Normalize splits
// hyphenated tokens before classifying their parts.
func (n *Normalizer) Classify(token string) Category {
	if _, isAbbreviation := n.expandAbbreviation(token); isAbbreviation {
		return Abbreviation
	}

	word := n.stripPunctuation(token)
	if matched := n.match(word); matched != nil {
		return matched.category
	}

	return OrdinaryWord
}

// normalizeToken rewrites one token. Empty results are dropped so that tokens
// made only of punctuation produce no words.
func (n *Normalizer) normalizeToken(token string) ([]string, error) {
	if expansion, isAbbreviation := n.expandAbbreviation(token); isAbbreviation {
		return []string{expansion}, nil
	}

	word := n.stripPunctuation(token)
	if word == "" {
		return nil, nil
	}

	if strings.Contains(word, hyphen) {
		return n.normalizeHyphenated(word)
	}

	matched := n.match(word)
	if matched == nil {
		return []string{word}, nil
	}

	spoken, err := matched.rewrite(n, word)
	if err != nil {
		return nil, err
	}

	return []string{spoken}, nil
}

// normalizeHyphenated normalizes each hyphen-separated part on its own. Parts
// contain no hyphen, so the recursion ends after one level.
func (n *Normalizer) normalizeHyphenated(word string) ([]string, error) {
	var spoken []string

	for _, part := range strings.Split(word, hyphen) {
		words, err := n.normalizeToken(part)
		if err != nil {
			return nil, err
		}

		spoken = append(spoken, words...)
	}

	return spoken, nil
}

// expandAbbreviation applies the abbreviation table to tokens shaped like "Mr." or
// "Jan.". A token only counts as an abbreviation when its expansion does not
// itself end in a period; otherwise the period is treated as sentence punctuation.
func (n *Normalizer) expandAbbreviation(token string) (string, bool) {
	if !n.abbreviationPattern.MatchString(token) {
		return "", false
	}

	expansion := n.tables.Expand(token)
	if strings.HasSuffix(expansion, abbreviationEnd) {
		return "", false
	}

	return expansion, true
}

func (n *Normalizer) match(word string) *rule {
	for i := range n.rules {
		if n.rules[i].pattern.MatchString(word) {
			return &n.rules[i]
		}
	}

	return nil
}

func (n *Normalizer) stripPunctuation(token string) string {
	return strings.TrimFunc(token, isEdgePunctuation)
}

func isEdgePunctuation(r rune) bool {
	if r <= unicode.MaxASCII {
		return strings.ContainsRune(asciiPunctuation, r)
	}

	return unicode.IsPunct(r)
}
