package reservation

import "errors"

// ErrLoadFailed marks a bulk load that could not read its source.
var ErrLoadFailed = errors.New("load failed")

// SkippedLine is a bulk-load record that was rejected.
type SkippedLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// LoadReport summarises a bulk load.
type LoadReport struct {
	Source  string        `json:"source"`
	Added   int           `json:"added"`
	Skipped []SkippedLine `json:"skipped"`
}
