// ABOUTME: Cell and date formatting for table output
// ABOUTME: Date-like keys render as dd-mm-yyyy hh:mm, long JSON values are truncated
package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/1Lab-vibe/a1-client/models"
)

var dateKeys = map[string]bool{
	"created_at": true, "updated_at": true, "createdAt": true, "updatedAt": true,
	"last_event_at": true, "stage_updated_at": true, "closed_at": true,
	"next_follow_up_at": true, "last_contacted_at": true, "last_email_sent_at": true,
	"last_telegram_sent_at": true, "last_campaign_sent_at": true,
	"primary_email_bounced_at": true, "next_followup_at": true,
}

// isDateLikeKey reports whether a field usually holds a date/time.
func isDateLikeKey(key string) bool {
	return dateKeys[key] || strings.HasSuffix(key, "_at") || strings.HasSuffix(key, "At")
}

var cellTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate renders a value as dd-mm-yyyy hh:mm, or returns "" when it
// does not parse as a date.
func formatDate(value any) string {
	var t time.Time
	switch v := value.(type) {
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			t = time.UnixMilli(ms)
		}
	case float64:
		t = time.UnixMilli(int64(v))
	case string:
		for _, layout := range cellTimeLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				t = parsed
				break
			}
		}
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006 15:04")
}

// formatMessageTime renders a transcript timestamp: today as HH:MM,
// otherwise dd.mm.yyyy HH:MM.
func formatMessageTime(timestamp int64) string {
	t := time.UnixMilli(timestamp)
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("02.01.2006 15:04")
}

// formatCell renders one table cell: "—" for nil, dates for date-like
// keys, JSON for nested values, truncated at 60 runes.
func formatCell(value any, key string) string {
	if value == nil {
		return "—"
	}
	if isDateLikeKey(key) {
		if formatted := formatDate(value); formatted != "" {
			return formatted
		}
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprintf("%v", v)
		} else {
			s = string(b)
		}
	}
	runes := []rune(s)
	if len(runes) > 60 {
		return string(runes[:57]) + "…"
	}
	return s
}

// recordColumns collects every key across a record list, id first, the
// rest sorted.
func recordColumns(records []models.Record) []string {
	set := map[string]bool{}
	for _, rec := range records {
		for key := range rec {
			set[key] = true
		}
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		if key != "id" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if set["id"] {
		return append([]string{"id"}, keys...)
	}
	return keys
}
