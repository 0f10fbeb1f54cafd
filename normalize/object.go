// ABOUTME: Single-record extraction for update/detail responses
// ABOUTME: Same wrapper-key tolerance as the list extractors, one object out
package normalize

import (
	"encoding/json"

	"github.com/1Lab-vibe/a1-client/models"
)

// ObjectJSON extracts a single record from a raw response body.
func ObjectJSON(raw json.RawMessage, preferred ...string) models.Record {
	return Object(FromJSON(raw), preferred...)
}

// Object recovers one record from a response of unknown shape: a wrapper
// key the caller names ({client: {...}}), a generic wrapper, the object
// itself, or the first element of an array. Nil when nothing fits.
func Object(raw any, preferred ...string) models.Record {
	switch v := raw.(type) {
	case map[string]any:
		keys := append(append([]string{}, preferred...), genericWrapperKeys...)
		for _, key := range keys {
			if inner, ok := v[key]; ok {
				if rec := Object(inner); rec != nil {
					return rec
				}
			}
		}
		return models.Record(v)
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				return models.Record(obj)
			}
		}
	case string:
		var parsed any
		if FromString(v, &parsed) {
			if _, again := parsed.(string); !again {
				return Object(parsed, preferred...)
			}
		}
	}
	return nil
}
