package nsw

import "maps"

// CenturyPivot is the largest two-digit year read as 20xx; larger values are
// read as 19xx.
const CenturyPivot = 25

// Tables holds the static lookup data used during normalization. A Tables value
// is never modified after construction and may be shared between goroutines.
type Tables struct {
	abbreviations    map[string]string
	months           [12]string
	acceptedTLDs     map[string]struct{}
	subwordOverrides map[string][]string
}

// DefaultTables returns the US English tables.
func DefaultTables() *Tables {
	return NewTables(defaultAbbreviations())
}

// NewTables builds tables around the given abbreviation mapping. Keys include the
// trailing period, e.g. "Dr." -> "Doctor". The map is copied.
func NewTables(abbreviations map[string]string) *Tables {
	return &Tables{
		abbreviations: maps.Clone(abbreviations),
		months: [12]string{
			"January", "February", "March", "April", "May", "June", "July",
			"August", "September", "October", "November", "December",
		},
		// Domains outside this set are spelled letter by letter (e.g. "edu").
		acceptedTLDs: map[string]struct{}{
			"com": {},
			"net": {},
			"org": {},
			"gov": {},
			"mil": {},
		},
		// The splitter cannot find these on its own.
		subwordOverrides: map[string][]string{
			"gmail": {"g", "mail"},
		},
	}
}

func defaultAbbreviations() map[string]string {
	return map[string]string{
		"Jan.":  "January",
		"Feb.":  "February",
		"Mar.":  "March",
		"Apr.":  "April",
		"Jun.":  "June",
		"Jul.":  "July",
		"Aug.":  "August",
		"Sep.":  "September",
		"Oct.":  "October",
		"Nov.":  "November",
		"Dec.":  "December",
		"Rd.":   "Road",
		"St.":   "Street",
		"Ave.":  "Avenue",
		"Mr.":   "Mister",
		"Mrs.":  "Missus",
		"Ms.":   "Miss",
		"Dr.":   "Doctor",
		"Jr.":   "Junior",
		"Sr.":   "Senior",
		"Sen.":  "Senator",
		"Co.":   "Company",
		"Inc.":  "Incorporated",
		"Ltd.":  "Limited",
		"Corp.": "Corporation",
	}
}

// Expand returns the expansion of an abbreviation, or the abbreviation itself
// when it is not in the table.
func (t *Tables) Expand(abbreviation string) string {
	if expansion, found := t.abbreviations[abbreviation]; found {
		return expansion
	}

	return abbreviation
}

// Month returns the name of a month numbered from 1.
func (t *Tables) Month(number int) (string, bool) {
	if number < 1 || number > len(t.months) {
		return "", false
	}

	return t.months[number-1], true
}

// AcceptsTLD reports whether a top-level domain is read as a whole word.
func (t *Tables) AcceptsTLD(tld string) bool {
	_, found := t.acceptedTLDs[tld]

	return found
}

// SubwordOverride returns a fixed split for a second-level domain.
func (t *Tables) SubwordOverride(domain string) ([]string, bool) {
	parts, found := t.subwordOverrides[domain]

	return parts, found
}
