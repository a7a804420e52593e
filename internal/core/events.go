package core

import "github.com/book-expert/events"

// TextNormalizedEvent announces that a page of text was normalized and its
// pronunciation mapped.
type TextNormalizedEvent struct {
	Header           events.EventHeader `json:"header"`
	SourceKey        string             `json:"source_key"`
	NormalizedKey    string             `json:"normalized_key"`
	PronunciationKey string             `json:"pronunciation_key"`
	WordCount        int                `json:"word_count"`
	PageNumber       int                `json:"page_number"`
	TotalPages       int                `json:"total_pages"`
}
