package services

import (
	"time"
)

// dueDateLayouts are tried in order. Values without a zone are read as UTC.
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDueDate parses a calendar date ("2030-01-01") or an ISO 8601 timestamp.
func ParseDueDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseOptionalDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := ParseDueDate(*value)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &parsed, nil
}
