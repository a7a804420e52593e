package nsw

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseableNumeral indicates that a numeric-looking token was rejected by the
// numeral parser or could not be spelled.
var ErrUnparseableNumeral = errors.New("unparseable numeral")

// Numeral is a parsed decimal number kept as digit strings, so no precision is
// lost before it is spelled.
type Numeral struct {
	Integer  string
	Fraction string
}

// NumeralParser turns a written decimal number into its digits.
type NumeralParser interface {
	Parse(text string) (Numeral, error)
}

// USNumeralParser reads numbers written with comma thousands separators and a
// period as the decimal mark ("1,234.50").
type USNumeralParser struct{}

const (
	usThousandsSeparator = ","
	usDecimalMark        = "."
)

// Parse implements NumeralParser.
func (USNumeralParser) Parse(text string) (Numeral, error) {
	plain := strings.ReplaceAll(text, usThousandsSeparator, "")
	integer, fraction, _ := strings.Cut(plain, usDecimalMark)

	if integer == "" && fraction == "" {
		return Numeral{}, fmt.Errorf("%w: %q", ErrUnparseableNumeral, text)
	}

	if !isDigits(integer) || !isDigits(fraction) {
		return Numeral{}, fmt.Errorf("%w: %q", ErrUnparseableNumeral, text)
	}

	return Numeral{Integer: integer, Fraction: fraction}, nil
}

func isDigits(text string) bool {
	for i := range len(text) {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}

	return true
}
