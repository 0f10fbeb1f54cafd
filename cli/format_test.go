package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/1Lab-vibe/a1-client/models"
)

func TestIsDateLikeKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"created_at", true},
		{"updatedAt", true},
		{"stage_updated_at", true},
		{"closedAt", true},
		{"name", false},
		{"status", false},
		{"formats", false},
	}
	for _, tt := range tests {
		if got := isDateLikeKey(tt.key); got != tt.want {
			t.Errorf("isDateLikeKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"rfc3339", "2024-06-15T09:30:00Z", "15-06-2024 09:30"},
		{"sql datetime", "2024-06-15 09:30:00", "15-06-2024 09:30"},
		{"date only", "2024-06-15", "15-06-2024 00:00"},
		{"not a date", "hello", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDate(tt.value); got != tt.want {
				t.Errorf("formatDate(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatDateUnixMillis(t *testing.T) {
	// Unix millis render in local time; compare against the same conversion.
	ms := int64(1718443800000)
	want := time.UnixMilli(ms).Format("02-01-2006 15:04")
	if got := formatDate(json.Number("1718443800000")); got != want {
		t.Errorf("formatDate millis = %q, want %q", got, want)
	}
}

func TestFormatCell(t *testing.T) {
	if got := formatCell(nil, "anything"); got != "—" {
		t.Errorf("Expected em dash for nil, got %q", got)
	}
	if got := formatCell("plain", "name"); got != "plain" {
		t.Errorf("Expected passthrough, got %q", got)
	}
	if got := formatCell(json.Number("42"), "count"); got != "42" {
		t.Errorf("Expected 42, got %q", got)
	}
	if got := formatCell(map[string]any{"a": 1}, "params"); got != `{"a":1}` {
		t.Errorf("Expected JSON, got %q", got)
	}
}

func TestFormatCellTruncates(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := formatCell(long, "notes")
	if len([]rune(got)) != 58 {
		t.Errorf("Expected 58 runes (57 + ellipsis), got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}
}

func TestRecordColumnsIDFirst(t *testing.T) {
	records := []models.Record{
		{"name": "Acme", "id": "1"},
		{"email": "a@b.c", "id": "2", "zzz": true},
	}
	cols := recordColumns(records)
	want := []string{"id", "email", "name", "zzz"}
	if len(cols) != len(want) {
		t.Fatalf("Expected %v, got %v", want, cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, cols)
		}
	}
}

func TestRecordColumnsNoID(t *testing.T) {
	cols := recordColumns([]models.Record{{"b": 1, "a": 2}})
	if len(cols) != 2 || cols[0] != "a" {
		t.Errorf("Expected sorted [a b], got %v", cols)
	}
}
