// ABOUTME: Tests for the open-map record type
// ABOUTME: Validates id/stage coercion, title fallback and stage moves
package models

import (
	"encoding/json"
	"testing"
)

func TestRecordID(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"string id", Record{"id": "abc"}, "abc"},
		{"numeric id", Record{"id": json.Number("9007199254740993")}, "9007199254740993"},
		{"missing id", Record{}, ""},
		{"nil id", Record{"id": nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordTitleFallback(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"title", Record{"title": "Big Deal", "name": "x", "id": "1"}, "Big Deal"},
		{"name", Record{"name": "Acme", "id": "1"}, "Acme"},
		{"id", Record{"id": "1"}, "1"},
		{"nothing", Record{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordWithStage(t *testing.T) {
	rec := Record{"id": "1", "stageId": "new", "amount": 100}
	moved := rec.WithStage("won")

	if moved.StageID() != "won" {
		t.Errorf("Expected moved stage won, got %s", moved.StageID())
	}
	if rec.StageID() != "new" {
		t.Error("WithStage must not mutate the original record")
	}
	if moved["amount"] != 100 {
		t.Error("WithStage must carry unknown fields through")
	}
}
