// ABOUTME: Per-lead event history extraction with heterogeneous timestamps
// ABOUTME: Tolerates the backend's "evants" misspelling; most recent first
package normalize

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/1Lab-vibe/a1-client/models"
)

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EventsJSON extracts a lead's event history from a raw response body.
func EventsJSON(raw json.RawMessage) []models.Record {
	return Events(FromJSON(raw))
}

// Events accepts a bare event array or an object wrapping it under
// "events" (or the observed "evants" misspelling) and returns the events
// sorted most recent first. Events with no resolvable timestamp sort last.
func Events(raw any) []models.Record {
	var events []models.Record
	switch v := raw.(type) {
	case []any:
		events = filterRecords(v)
	case map[string]any:
		for _, key := range []string{"events", "evants"} {
			inner, ok := v[key]
			if !ok {
				continue
			}
			if arr, ok := inner.([]any); ok {
				events = filterRecords(arr)
				break
			}
		}
	}
	if len(events) == 0 {
		return events
	}
	sort.SliceStable(events, func(i, j int) bool {
		return EventTimestamp(events[i]) > EventTimestamp(events[j])
	})
	return events
}

// EventTimestamp resolves an event's time in unix milliseconds: a numeric
// "timestamp" field wins, otherwise createdAt/created_at is date-parsed.
// Unresolvable events get 0 (oldest).
func EventTimestamp(event models.Record) int64 {
	if n, ok := numberValue(event["timestamp"]); ok {
		return int64(n)
	}
	for _, key := range []string{"createdAt", "created_at"} {
		s, ok := event[key].(string)
		if !ok || s == "" {
			continue
		}
		for _, layout := range eventTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UnixMilli()
			}
		}
	}
	return 0
}
