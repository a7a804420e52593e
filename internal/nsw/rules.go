package nsw

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Regex patterns for the recognizers. Every pattern is anchored and is matched
// against a whole token with edge punctuation already removed.
const (
	abbreviationRegexPattern = `^[A-Z][a-z]{0,3}\.$`
	acronymRegexPattern      = `^[A-Z]{2,}$`
	dateRegexPattern         = `^(0?[1-9]|1[0-2])/(0?[1-9]|[12][0-9]|3[01])/([0-9]{2}|[0-9]{4})$`
	emailRegexPattern        = `^[^@.]+@[^@.]+\.[a-zA-Z]{3}$`
	currencyRegexPattern     = `^\$([1-9][0-9]{0,2}(,[0-9]{3})*(\.[0-9]{1,10})?|[1-9][0-9]*(\.[0-9]{1,10})?|0(\.[0-9]{1,10})?|(\.[0-9]{1,10})?)$`
	timeRegexPattern         = `^[0-9]{1,2}(:[0-9]{1,2}){1,2}$`
	yearRegexPattern         = `^(19|20)[0-9]{2,4}$`
	numberRegexPattern       = `^([0-9]*\.?[0-9]+|[0-9]{1,3}(,[0-9]{3})*(\.[0-9]+)?)$`
)

// Spoken connectives inserted by the rewrite rules.
const (
	wordAt      = "at"
	wordDot     = "dot"
	wordHours   = "hours"
	wordMinutes = "minutes"
	wordAnd     = "and"
	wordSeconds = "seconds"

	currencyMarker     = "$"
	currencyCode       = "USD"
	dateSeparator      = "/"
	timeSeparator      = ":"
	emailSeparator     = "@"
	domainSeparator    = "."
	twoDigitYear       = 2
	twentiethCentury   = "19"
	twentyFirstCentury = "20"
	hoursMinutesSecs   = 3
)

// rule pairs a recognizer with the rewrite applied to the tokens it matches.
type rule struct {
	category Category
	pattern  *regexp.Regexp
	rewrite  func(n *Normalizer, word string) (string, error)
}

// newRules returns the recognizers in the order they are tried. The order is
// significant: a date is also shaped like a number and a year like a number.
func newRules() []rule {
	return []rule{
		{category: AcronymOrLetterSequence, pattern: regexp.MustCompile(acronymRegexPattern), rewrite: (*Normalizer).rewriteAcronym},
		{category: Date, pattern: regexp.MustCompile(dateRegexPattern), rewrite: (*Normalizer).rewriteDate},
		{category: Email, pattern: regexp.MustCompile(emailRegexPattern), rewrite: (*Normalizer).rewriteEmail},
		{category: Currency, pattern: regexp.MustCompile(currencyRegexPattern), rewrite: (*Normalizer).rewriteCurrency},
		{category: Time, pattern: regexp.MustCompile(timeRegexPattern), rewrite: (*Normalizer).rewriteTime},
		{category: Year, pattern: regexp.MustCompile(yearRegexPattern), rewrite: (*Normalizer).rewriteYear},
		{category: Number, pattern: regexp.MustCompile(numberRegexPattern), rewrite: (*Normalizer).rewriteNumber},
	}
}

// rewriteAcronym keeps letter sequences that are dictionary words and spells out
// the rest.
func (n *Normalizer) rewriteAcronym(word string) (string, error) {
	if n.lexicon.Contains(strings.ToLower(word)) {
		return word, nil
	}

	return spell(word), nil
}

// rewriteDate reads MM/DD/YY or MM/DD/YYYY as "<month> <ordinal day> <year>".
func (n *Normalizer) rewriteDate(word string) (string, error) {
	fields := strings.Split(word, dateSeparator)
	monthField, dayField, yearField := fields[0], fields[1], fields[2]

	if len(yearField) == twoDigitYear {
		yearField = expandTwoDigitYear(yearField)
	}

	monthNumber, err := strconv.Atoi(monthField)
	if err != nil {
		return "", fmt.Errorf("%w: month %q: %w", ErrUnparseableNumeral, monthField, err)
	}

	month, found := n.tables.Month(monthNumber)
	if !found {
		return "", fmt.Errorf("%w: month %q", ErrUnparseableNumeral, monthField)
	}

	day, err := strconv.ParseUint(dayField, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: day %q: %w", ErrUnparseableNumeral, dayField, err)
	}

	year, err := strconv.ParseUint(yearField, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: year %q: %w", ErrUnparseableNumeral, yearField, err)
	}

	return strings.Join([]string{month, n.speller.Ordinal(day), n.speller.Year(year)}, " "), nil
}

// expandTwoDigitYear prefixes a century: 00 through CenturyPivot become 20xx,
// everything above becomes 19xx.
func expandTwoDigitYear(year string) string {
	value, err := strconv.Atoi(year)
	if err == nil && value <= CenturyPivot {
		return twentyFirstCentury + year
	}

	return twentiethCentury + year
}

// rewriteEmail spells the local part, splits the domain into words where it can
// and reads the top-level domain as a word only when it is a familiar one.
func (n *Normalizer) rewriteEmail(word string) (string, error) {
	local, domain, _ := strings.Cut(word, emailSeparator)
	secondLevel, topLevel, _ := strings.Cut(domain, domainSeparator)

	// Domains are case-insensitive; tables and the splitter hold lowercase words.
	lowerSecondLevel := strings.ToLower(secondLevel)
	lowerTopLevel := strings.ToLower(topLevel)

	parts := []string{spell(local), wordAt}

	if override, found := n.tables.SubwordOverride(lowerSecondLevel); found {
		parts = append(parts, override...)
	} else if subwords := n.splitter.Split(lowerSecondLevel); len(subwords) > 0 {
		parts = append(parts, subwords...)
	} else {
		parts = append(parts, spell(secondLevel))
	}

	parts = append(parts, wordDot)

	if n.tables.AcceptsTLD(lowerTopLevel) {
		parts = append(parts, lowerTopLevel)
	} else {
		parts = append(parts, spell(topLevel))
	}

	return strings.Join(parts, " "), nil
}

// rewriteCurrency reads a dollar amount. Commas from the spelled form are removed.
func (n *Normalizer) rewriteCurrency(word string) (string, error) {
	amount := strings.TrimPrefix(word, currencyMarker)

	numeral, err := n.numerals.Parse(amount)
	if err != nil {
		return "", err
	}

	spoken, err := n.speller.Currency(numeral.Integer, numeral.Fraction, currencyCode)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrUnparseableNumeral, word, err)
	}

	return strings.ReplaceAll(spoken, ",", ""), nil
}

// rewriteTime reads HH:MM:SS or MM:SS. Each field is read as a cardinal.
func (n *Normalizer) rewriteTime(word string) (string, error) {
	fields := strings.Split(word, timeSeparator)
	spoken := make([]string, 0, len(fields))

	for _, field := range fields {
		value, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: time field %q: %w", ErrUnparseableNumeral, field, err)
		}

		spoken = append(spoken, n.speller.Cardinal(value))
	}

	if len(spoken) == hoursMinutesSecs {
		return fmt.Sprintf(
			"%s %s %s %s %s %s %s",
			spoken[0], wordHours, spoken[1], wordMinutes, wordAnd, spoken[2], wordSeconds,
		), nil
	}

	return fmt.Sprintf("%s %s %s %s %s", spoken[0], wordMinutes, wordAnd, spoken[1], wordSeconds), nil
}

// rewriteYear reads a year in pairs ("nineteen ninety").
func (n *Normalizer) rewriteYear(word string) (string, error) {
	year, err := strconv.ParseUint(word, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: year %q: %w", ErrUnparseableNumeral, word, err)
	}

	return n.speller.Year(year), nil
}

// rewriteNumber reads an integer or decimal as a cardinal.
func (n *Normalizer) rewriteNumber(word string) (string, error) {
	numeral, err := n.numerals.Parse(word)
	if err != nil {
		return "", err
	}

	spoken, err := n.speller.Decimal(numeral.Integer, numeral.Fraction)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrUnparseableNumeral, word, err)
	}

	return spoken, nil
}

// spell separates every character of word with a space.
func spell(word string) string {
	return strings.Join(strings.Split(word, ""), " ")
}
