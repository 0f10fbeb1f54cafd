package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordsJSONShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id":"1"},{"id":"2"}]`, 2},
		{"items wrapper", `{"items":[{"id":"1"}]}`, 1},
		{"data wrapper", `{"data":[{"id":"1"},{"id":"2"},{"id":"3"}]}`, 3},
		{"body wrapper", `{"body":[{"id":"1"}]}`, 1},
		{"nested wrappers", `{"data":{"items":[{"id":"1"}]}}`, 1},
		{"stringified array", `"[{\"id\":\"1\"},{\"id\":\"2\"}]"`, 2},
		{"stringified under wrapper", `{"data":"[{\"id\":\"1\"}]"}`, 1},
		{"no array anywhere", `{"status":"ok","count":3}`, 0},
		{"empty array", `[]`, 0},
		{"scalar", `42`, 0},
		{"null", `null`, 0},
		{"non-object elements skipped", `[1,"two",{"id":"3"}]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := RecordsJSON(json.RawMessage(tt.raw))
			assert.Len(t, recs, tt.want)
		})
	}
}

func TestRecordsPreferredKeyWinsOverGeneric(t *testing.T) {
	raw := json.RawMessage(`{
		"items": [{"id":"wrong"}],
		"leads": [{"id":"right-1"},{"id":"right-2"}]
	}`)
	recs := RecordsJSON(raw, "leads")
	assert.Len(t, recs, 2)
	assert.Equal(t, "right-1", recs[0].ID())
}

func TestRecordsSingleElementArrayRetry(t *testing.T) {
	// Some flows wrap the whole response object in a one-element array.
	raw := json.RawMessage(`[{"leads":[{"id":"1"},{"id":"2"}],"stages":[]}]`)
	recs := RecordsJSON(raw, "leads")
	assert.Len(t, recs, 2)
}

func TestRecordsNestedScanPrefersRecordLikeArray(t *testing.T) {
	raw := json.RawMessage(`{
		"meta": {"tags": [{"color":"red"},{"color":"blue"}]},
		"result": {"rows": [{"id":"1","name":"Acme","email":"a@b.c"}]}
	}`)
	recs := RecordsJSON(raw)
	assert.Len(t, recs, 1)
	assert.Equal(t, "Acme", recs[0]["name"])
}

func TestRecordsScanFallsBackToFirstArray(t *testing.T) {
	// No array scores: the first object-holding array (in key order) wins.
	raw := json.RawMessage(`{
		"alpha": [{"x":1}],
		"beta": [{"y":2},{"y":3}]
	}`)
	recs := RecordsJSON(raw)
	assert.Len(t, recs, 1)
}

func TestRecordsScanDepthBounded(t *testing.T) {
	// An array buried past the depth limit is not found.
	raw := json.RawMessage(`{"a":{"b":{"c":{"d":{"e":{"f":{"g":{"items":[{"id":"1"}]}}}}}}}}`)
	recs := RecordsJSON(raw)
	assert.Empty(t, recs)
}

func TestRecordsPreservesBigIntIDs(t *testing.T) {
	raw := json.RawMessage(`[{"id":9007199254740993}]`)
	recs := RecordsJSON(raw)
	assert.Len(t, recs, 1)
	// json.Number keeps the digits a float64 would round.
	assert.Equal(t, "9007199254740993", recs[0].ID())
}

func TestObjectJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		preferred []string
		wantID    string
	}{
		{"named wrapper", `{"client":{"id":"c1","name":"Acme"}}`, []string{"client"}, "c1"},
		{"data wrapper", `{"data":{"id":"c2"}}`, nil, "c2"},
		{"bare object", `{"id":"c3","name":"Bare"}`, nil, "c3"},
		{"array first element", `[{"id":"c4"},{"id":"c5"}]`, nil, "c4"},
		{"stringified object", `"{\"id\":\"c6\"}"`, nil, "c6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ObjectJSON(json.RawMessage(tt.raw), tt.preferred...)
			if assert.NotNil(t, rec) {
				assert.Equal(t, tt.wantID, rec.ID())
			}
		})
	}
}

func TestObjectJSONNilOnUnusable(t *testing.T) {
	assert.Nil(t, ObjectJSON(json.RawMessage(`[]`)))
	assert.Nil(t, ObjectJSON(json.RawMessage(`42`)))
	assert.Nil(t, ObjectJSON(json.RawMessage(`"just a plain string"`)))
}
