package core

import (
	"strings"
	"time"
)

const (
	// DateTimeLayout is the ISO 8601 local date-time the API stores and compares.
	DateTimeLayout = "2006-01-02T15:04:05"
	// DateLayout is used for list filter bounds.
	DateLayout = "2006-01-02"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	DateTimeLayout,
	DateLayout,
}

// ParseTimestamp parses the date formats the API has been seen to return.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatTimestamp renders t the way expenses are stored by the API.
func FormatTimestamp(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatDate renders the date part of t for filter bounds.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
