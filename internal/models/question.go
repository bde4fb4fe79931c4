package models

// Question is a single interview question. Questions are immutable once
// generated; the session only ever reads them.
type Question struct {
	Text       string `json:"text"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}
