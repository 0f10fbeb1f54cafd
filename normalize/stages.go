// ABOUTME: Stage catalog extraction and reconciliation for kanban views
// ABOUTME: Union of backend, referenced and default stages, sorted by order, no duplicate ids
package normalize

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/1Lab-vibe/a1-client/models"
)

// StagesJSON extracts the stage catalog from a raw response body.
func StagesJSON(raw json.RawMessage) []models.Stage {
	return Stages(FromJSON(raw))
}

// Stages pulls a stage list out of a response of unknown shape. Only
// elements shaped like {id: string, title: string} are accepted.
func Stages(raw any) []models.Stage {
	switch v := raw.(type) {
	case []any:
		return filterStages(v)
	case map[string]any:
		for _, key := range []string{"stages", "data", "body"} {
			inner, ok := v[key]
			if !ok {
				continue
			}
			if stages := Stages(inner); len(stages) > 0 {
				return stages
			}
		}
	}
	return nil
}

func filterStages(arr []any) []models.Stage {
	stages := make([]models.Stage, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		id, okID := obj["id"].(string)
		title, okTitle := obj["title"].(string)
		if !okID || !okTitle || id == "" {
			continue
		}
		order := i
		if n, ok := numberValue(obj["order"]); ok {
			order = int(n)
		}
		stages = append(stages, models.Stage{ID: id, Title: title, Order: order})
	}
	return stages
}

// ReconcileStages builds the final catalog: backend stages, plus a
// synthesized entry for every stage id some record references but the
// backend never declared (so no card is orphaned off the board), merged
// with the default catalog and sorted by order.
func ReconcileStages(records []models.Record, backend, defaults []models.Stage) []models.Stage {
	catalog := append([]models.Stage{}, backend...)
	seen := make(map[string]bool, len(catalog))
	maxOrder := -1
	for _, s := range catalog {
		seen[s.ID] = true
		if s.Order > maxOrder {
			maxOrder = s.Order
		}
	}

	for _, rec := range records {
		id := rec.StageID()
		if id == "" || seen[id] {
			continue
		}
		maxOrder++
		catalog = append(catalog, models.Stage{ID: id, Title: HumanizeID(id), Order: maxOrder})
		seen[id] = true
	}

	for _, def := range defaults {
		if seen[def.ID] {
			continue
		}
		catalog = append(catalog, def)
		seen[def.ID] = true
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Order < catalog[j].Order
	})
	return catalog
}

var titleCaser = cases.Title(language.Und)

// HumanizeID turns a stage id like "in_progress" into "In Progress".
func HumanizeID(id string) string {
	out := make([]rune, 0, len(id))
	for _, r := range id {
		if r == '_' || r == '-' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return titleCaser.String(string(out))
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
