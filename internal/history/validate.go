package history

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MalformedEventError identifies the record and field that failed ingestion checks.
type MalformedEventError struct {
	EventID string
	Field   string
	Value   string
}

func (e *MalformedEventError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("malformed input: field %s has invalid value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("malformed event %s: field %s has invalid value %q", e.EventID, e.Field, e.Value)
}

// Validate checks the civilization name and every event against the closed
// enumerations. It returns the first *MalformedEventError found, or nil.
func Validate(civName string, events []Event) error {
	if strings.TrimSpace(civName) == "" {
		return &MalformedEventError{Field: "civName", Value: civName}
	}
	for _, e := range events {
		if err := ValidateEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEvent checks a single event record.
func ValidateEvent(e Event) error {
	if math.IsNaN(e.Significance) || math.IsInf(e.Significance, 0) || e.Significance < 0 {
		return &MalformedEventError{
			EventID: e.ID,
			Field:   "significance",
			Value:   strconv.FormatFloat(e.Significance, 'g', -1, 64),
		}
	}
	if !e.Type.Valid() {
		return &MalformedEventError{EventID: e.ID, Field: "type", Value: string(e.Type)}
	}
	if !e.Category.Valid() {
		return &MalformedEventError{EventID: e.ID, Field: "category", Value: string(e.Category)}
	}
	return nil
}

// Normalize returns a copy of events with type and category spellings
// canonicalized, so "military" and "MILITARY" both ingest as Military.
// Unrecognized values are left as given for Validate to report.
func Normalize(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		if t, ok := ParseEventType(string(e.Type)); ok {
			e.Type = t
		}
		if c, ok := ParseCategory(string(e.Category)); ok {
			e.Category = c
		}
		out[i] = e
	}
	return out
}
