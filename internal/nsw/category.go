package nsw

// Category is the kind of non-standard word a token was recognized as.
type Category int

// Categories in the order the normalizer tries them. OrdinaryWord applies when
// nothing else matches.
const (
	Abbreviation Category = iota
	AcronymOrLetterSequence
	Date
	Email
	Currency
	Time
	Year
	Number
	OrdinaryWord
)

var categoryNames = [...]string{
	Abbreviation:            "ABBREVIATION",
	AcronymOrLetterSequence: "ACRONYM_OR_LETTER_SEQUENCE",
	Date:                    "DATE",
	Email:                   "EMAIL",
	Currency:                "CURRENCY",
	Time:                    "TIME",
	Year:                    "YEAR",
	Number:                  "NUMBER",
	OrdinaryWord:            "ORDINARY_WORD",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "UNKNOWN"
	}

	return categoryNames[c]
}
