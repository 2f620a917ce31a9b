package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

const dateOnly = "2006-01-02"

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. A plain date
// used as an upper bound covers the whole day.
func ParseDate(field, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, apperrors.NewValidationError("%s must be YYYY-MM-DD or RFC 3339 (got %q)", field, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
