// Package numwords spells numbers out as English words.
//
// The readings follow common spoken conventions: "and" after hundreds and before
// a trailing group under one hundred, hyphenated tens and units, paired year
// readings ("nineteen ninety-nine") and dollars-and-cents currency phrases.
package numwords

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// NumberBaseTen represents the base for decimal number system.
	NumberBaseTen = 10
	// NumberBaseTwenty represents the boundary for teen numbers.
	NumberBaseTwenty = 20
	// NumberBaseHundred represents the base for hundreds.
	NumberBaseHundred = 100
	// NumberBaseThousand represents the base for thousands.
	NumberBaseThousand = 1000
	// YearCardinalLimit is the first year value read as a plain cardinal.
	YearCardinalLimit = 10000
)

// Words used to join spoken parts.
const (
	wordZero     = "zero"
	wordHundred  = "hundred"
	wordPoint    = "point"
	wordOh       = "oh"
	groupJoiner  = ", "
	andJoiner    = " and "
	hyphenJoiner = "-"
	ordinalTh    = "th"
	ordinalIe    = "ie"
	centDigits   = 2
	groupDigits  = 3
	roundingHalf = '5'
)

// Default currency code.
const CurrencyUSD = "USD"

var (
	// ErrNumberTooLarge indicates a numeral beyond the largest scale word.
	ErrNumberTooLarge = errors.New("number too large to spell")
	// ErrInvalidDigits indicates that a digit string contains non-digit characters.
	ErrInvalidDigits = errors.New("invalid digit string")
	// ErrUnknownCurrency indicates that no unit names are known for a currency code.
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// currencyForms holds singular and plural names of a major and minor unit.
type currencyForms struct {
	major [2]string
	minor [2]string
}

// Converter spells numbers as English words. The zero value is not usable;
// construct one with New.
type Converter struct {
	ones       []string
	teens      []string
	tens       []string
	scales     []string
	ordinals   map[string]string
	currencies map[string]currencyForms
}

// New creates a Converter with the English word tables.
func New() *Converter {
	return &Converter{
		ones: []string{
			"", "one", "two", "three", "four", "five",
			"six", "seven", "eight", "nine",
		},
		teens: []string{
			"ten", "eleven", "twelve", "thirteen", "fourteen",
			"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
		},
		tens: []string{
			"", "", "twenty", "thirty", "forty", "fifty",
			"sixty", "seventy", "eighty", "ninety",
		},
		scales: []string{
			"", "thousand", "million", "billion",
			"trillion", "quadrillion", "quintillion", "sextillion",
			"septillion", "octillion", "nonillion", "decillion",
			"undecillion", "duodecillion", "tredecillion", "quattuordecillion",
			"quindecillion", "sexdecillion", "septendecillion", "octodecillion",
			"novemdecillion", "vigintillion",
		},
		ordinals: map[string]string{
			"one":    "first",
			"two":    "second",
			"three":  "third",
			"four":   "fourth",
			"five":   "fifth",
			"six":    "sixth",
			"seven":  "seventh",
			"eight":  "eighth",
			"nine":   "ninth",
			"ten":    "tenth",
			"eleven": "eleventh",
			"twelve": "twelfth",
		},
		currencies: map[string]currencyForms{
			CurrencyUSD: {major: [2]string{"dollar", "dollars"}, minor: [2]string{"cent", "cents"}},
			"EUR":       {major: [2]string{"euro", "euros"}, minor: [2]string{"cent", "cents"}},
			"GBP":       {major: [2]string{"pound", "pounds"}, minor: [2]string{"penny", "pence"}},
		},
	}
}

// Cardinal returns the cardinal reading of n, e.g. "one thousand, two hundred and
// thirty-four".
func (c *Converter) Cardinal(n uint64) string {
	var groups []uint64
	for rest := n; rest > 0; rest /= NumberBaseThousand {
		groups = append(groups, rest%NumberBaseThousand)
	}

	return c.readGroups(groups)
}

// CardinalDigits reads an unsigned digit string of any length up to the largest
// scale word. The empty string reads as zero.
func (c *Converter) CardinalDigits(digits string) (string, error) {
	groups, err := c.splitGroups(digits)
	if err != nil {
		return "", err
	}

	return c.readGroups(groups), nil
}

// splitGroups cuts digits into groups of three, least significant first.
func (c *Converter) splitGroups(digits string) ([]uint64, error) {
	if !isDigits(digits) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDigits, digits)
	}

	digits = strings.TrimLeft(digits, "0")

	count := (len(digits) + groupDigits - 1) / groupDigits
	if count > len(c.scales) {
		return nil, fmt.Errorf("%w: %s", ErrNumberTooLarge, digits)
	}

	groups := make([]uint64, count)

	for i := range groups {
		end := len(digits) - i*groupDigits
		start := max(end-groupDigits, 0)

		value, err := strconv.ParseUint(digits[start:end], NumberBaseTen, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDigits, digits)
		}

		groups[i] = value
	}

	return groups, nil
}

// readGroups reads base-thousand groups, least significant first.
func (c *Converter) readGroups(groups []uint64) string {
	var result strings.Builder

	for scale := len(groups) - 1; scale >= 0; scale-- {
		group := groups[scale]
		if group == 0 {
			continue
		}

		// Everything left to read is below one hundred only in the last group.
		if result.Len() > 0 {
			if scale == 0 && group < NumberBaseHundred {
				result.WriteString(andJoiner)
			} else {
				result.WriteString(groupJoiner)
			}
		}

		result.WriteString(c.convertHundreds(group))

		if scale > 0 {
			result.WriteString(" " + c.scales[scale])
		}
	}

	if result.Len() == 0 {
		return wordZero
	}

	return result.String()
}

// Ordinal returns the ordinal reading of n, e.g. "twenty-first".
func (c *Converter) Ordinal(n uint64) string {
	words := strings.Split(c.Cardinal(n), " ")
	pieces := strings.Split(words[len(words)-1], hyphenJoiner)
	last := pieces[len(pieces)-1]

	ordinal, found := c.ordinals[last]
	if !found {
		if strings.HasSuffix(last, "y") {
			last = strings.TrimSuffix(last, "y") + ordinalIe
		}

		ordinal = last + ordinalTh
	}

	pieces[len(pieces)-1] = ordinal
	words[len(words)-1] = strings.Join(pieces, hyphenJoiner)

	return strings.Join(words, " ")
}

// Year returns the spoken year reading of n: "nineteen ninety-nine",
// "nineteen oh-five", "nineteen hundred", "two thousand and five".
func (c *Converter) Year(n uint64) string {
	high, low := n/NumberBaseHundred, n%NumberBaseHundred

	if high == 0 || (high%NumberBaseTen == 0 && low < NumberBaseTen) || n >= YearCardinalLimit {
		return c.Cardinal(n)
	}

	highText := c.Cardinal(high)

	switch {
	case low == 0:
		return highText + " " + wordHundred
	case low < NumberBaseTen:
		return highText + " " + wordOh + hyphenJoiner + c.Cardinal(low)
	default:
		return highText + " " + c.Cardinal(low)
	}
}

// Decimal reads a number given as its integer and fractional digit strings. The
// integer part is read as a cardinal and every fractional digit is read on its own
// after "point". Trailing fractional zeros are not read.
func (c *Converter) Decimal(integer, fraction string) (string, error) {
	whole, err := c.CardinalDigits(integer)
	if err != nil {
		return "", err
	}

	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		return whole, nil
	}

	parts := []string{whole, wordPoint}

	for _, digit := range fraction {
		if digit < '0' || digit > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidDigits, fraction)
		}

		parts = append(parts, c.Cardinal(uint64(digit-'0')))
	}

	return strings.Join(parts, " "), nil
}

// Currency reads an amount as "<major> <unit>, <minor> <subunit>". The fraction is
// rounded half-up to two digits before reading.
func (c *Converter) Currency(integer, fraction, code string) (string, error) {
	forms, found := c.currencies[code]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}

	if !isDigits(integer) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigits, integer)
	}

	minor, err := roundCents(fraction)
	if err != nil {
		return "", err
	}

	if minor == NumberBaseHundred {
		integer = incrementDigits(integer)
		minor = 0
	}

	major, err := c.CardinalDigits(integer)
	if err != nil {
		return "", err
	}

	majorUnit := forms.major[1]
	if strings.TrimLeft(integer, "0") == "1" {
		majorUnit = forms.major[0]
	}

	return fmt.Sprintf(
		"%s %s%s%s %s",
		major,
		majorUnit,
		groupJoiner,
		c.Cardinal(minor),
		pluralize(minor, forms.minor),
	), nil
}

func (c *Converter) convertUnderHundred(num uint64) string {
	if num < NumberBaseTen {
		return c.ones[num]
	}

	if num < NumberBaseTwenty {
		return c.teens[num-NumberBaseTen]
	}

	result := c.tens[num/NumberBaseTen]
	if num%NumberBaseTen > 0 {
		result += hyphenJoiner + c.ones[num%NumberBaseTen]
	}

	return result
}

func (c *Converter) convertHundreds(num uint64) string {
	hundreds := num / NumberBaseHundred
	remainder := num % NumberBaseHundred

	if hundreds == 0 {
		return c.convertUnderHundred(remainder)
	}

	result := c.ones[hundreds] + " " + wordHundred
	if remainder > 0 {
		result += andJoiner + c.convertUnderHundred(remainder)
	}

	return result
}

func pluralize(n uint64, forms [2]string) string {
	if n == 1 {
		return forms[0]
	}

	return forms[1]
}

func isDigits(digits string) bool {
	for _, digit := range digits {
		if digit < '0' || digit > '9' {
			return false
		}
	}

	return true
}

// incrementDigits adds one to an unsigned digit string.
func incrementDigits(digits string) string {
	incremented := []byte(digits)

	for i := len(incremented) - 1; i >= 0; i-- {
		if incremented[i] < '9' {
			incremented[i]++

			return string(incremented)
		}

		incremented[i] = '0'
	}

	return "1" + string(incremented)
}

// roundCents rounds a fractional digit string half-up to hundredths. The result
// is 100 when rounding carries into the major unit.
func roundCents(fraction string) (uint64, error) {
	if !isDigits(fraction) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDigits, fraction)
	}

	padded := fraction + strings.Repeat("0", centDigits)

	cents, err := strconv.ParseUint(padded[:centDigits], NumberBaseTen, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDigits, fraction)
	}

	if len(fraction) > centDigits && fraction[centDigits] >= roundingHalf {
		cents++
	}

	return cents, nil
}
