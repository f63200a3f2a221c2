package service

import (
	"time"

	"swmanager/internal/apperror"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the instant in UTC
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperror.InvalidInput("Invalid date format, expected YYYY-MM-DD or RFC3339: " + value)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// checkWindow rejects ranges whose end precedes their start
func checkWindow(start, end time.Time, what string) error {
	if end.Before(start) {
		return apperror.InvalidInput(what + ": end date must not be before start date")
	}
	return nil
}
