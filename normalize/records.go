// ABOUTME: Best-effort extraction of record lists from responses of unknown shape
// ABOUTME: Handles bare arrays, wrapper objects, stringified JSON and nested trees
package normalize

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/1Lab-vibe/a1-client/models"
)

// Wrapper keys tried after any domain-specific keys the caller names.
var genericWrapperKeys = []string{"items", "data", "body"}

// Keys whose presence makes an object look like a CRM record.
var recordKeys = []string{"id", "name", "title", "email", "stageId"}

// maxScanDepth bounds the recursive array hunt through unknown trees.
const maxScanDepth = 6

// FromJSON decodes raw JSON into the any-shaped tree the extractors work
// on. Numbers stay json.Number so bigint ids survive untouched.
func FromJSON(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// RecordsJSON extracts a record list from a raw response body.
func RecordsJSON(raw json.RawMessage, preferred ...string) []models.Record {
	return Records(FromJSON(raw), preferred...)
}

// Records recovers a best-effort record list from a value of unknown
// shape. It never fails: an unrecognizable shape yields an empty list so
// views degrade to "no records" instead of an error.
func Records(raw any, preferred ...string) []models.Record {
	recs := extractRecords(raw, preferred)
	if len(recs) > 0 {
		return recs
	}
	// Some backends wrap a single-element array around the true response
	// object. Retry with that element as the root.
	if arr, ok := raw.([]any); ok && len(arr) > 0 {
		if first, ok := arr[0].(map[string]any); ok {
			return extractRecords(first, preferred)
		}
	}
	return recs
}

func extractRecords(raw any, preferred []string) []models.Record {
	switch v := raw.(type) {
	case []any:
		return filterRecords(v)
	case string:
		var parsed any
		if FromString(v, &parsed) {
			if arr, ok := parsed.([]any); ok {
				return filterRecords(arr)
			}
		}
		return nil
	case map[string]any:
		keys := append(append([]string{}, preferred...), genericWrapperKeys...)
		for _, key := range keys {
			inner, ok := v[key]
			if !ok {
				continue
			}
			if recs := extractRecords(inner, nil); len(recs) > 0 {
				return recs
			}
		}
		return scanForRecords(v)
	default:
		return nil
	}
}

// FromString parses stringified JSON (keeping json.Number). Returns false
// when the string is not JSON.
func FromString(s string, out *any) bool {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	return dec.Decode(out) == nil
}

func filterRecords(arr []any) []models.Record {
	recs := make([]models.Record, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			recs = append(recs, models.Record(obj))
		}
	}
	return recs
}

// scanForRecords walks the object tree collecting every array, scores
// each by how record-like its elements are and takes the best one. With
// no positive score anywhere, the first array holding any object-shaped
// element wins.
func scanForRecords(root map[string]any) []models.Record {
	var best, firstNonEmpty []models.Record
	bestScore := 0

	var walk func(v any, depth int)
	walk = func(v any, depth int) {
		if depth > maxScanDepth {
			return
		}
		switch node := v.(type) {
		case []any:
			recs := filterRecords(node)
			if len(recs) > 0 && firstNonEmpty == nil {
				firstNonEmpty = recs
			}
			if score := scoreRecords(recs); score > bestScore {
				bestScore = score
				best = recs
			}
		case map[string]any:
			// Sorted keys keep "first array" deterministic; Go map order is not.
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(node[k], depth+1)
			}
		}
	}
	walk(root, 0)

	if best != nil {
		return best
	}
	return firstNonEmpty
}

func scoreRecords(recs []models.Record) int {
	score := 0
	for _, rec := range recs {
		for _, key := range recordKeys {
			if _, ok := rec[key]; ok {
				score++
			}
		}
	}
	return score
}
