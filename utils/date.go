package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for reservation dates.
const DateLayout = time.DateOnly

// ParseDate parses a YYYY-MM-DD date. An empty string means today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
