// ABOUTME: Company config CLI command: show and edit the backend config tree
// ABOUTME: Nested keys use dotted paths (section.sub.key), up to 3 levels
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/1Lab-vibe/a1-client/models"
)

const maxConfigDepth = 3

// ConfigCommand shows the company config, or sets dotted keys.
func ConfigCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	var sets multiFlag
	fs.Var(&sets, "set", "section.key=value to set (repeatable)")
	_ = fs.Parse(args)

	ctx := context.Background()
	cfg, err := app.API.FetchConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		cfg = models.Record{}
	}

	if len(sets) > 0 {
		for _, kv := range sets {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, want key=value", kv)
			}
			var parsed any
			if err := json.Unmarshal([]byte(value), &parsed); err != nil {
				parsed = value
			}
			setNested(cfg, strings.Split(key, "."), parsed)
		}
		saved, err := app.API.UpdateConfig(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		cfg = saved
		fmt.Println("✓ Config updated")
	}

	entries := flattenConfig(cfg, "", 0)
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	for _, e := range entries {
		fmt.Printf("%s = %s\n", e.key, formatCell(e.value, e.key))
	}
	return nil
}

type configEntry struct {
	key   string
	value any
}

// flattenConfig unrolls the nested config into dotted key/value pairs,
// stopping at maxConfigDepth; deeper subtrees print as JSON.
func flattenConfig(v any, prefix string, depth int) []configEntry {
	obj, ok := v.(map[string]any)
	if !ok || depth >= maxConfigDepth || len(obj) == 0 {
		if prefix == "" {
			return nil
		}
		return []configEntry{{key: prefix, value: v}}
	}
	var entries []configEntry
	for k, child := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := child.(map[string]any); ok && depth+1 < maxConfigDepth && len(nested) > 0 {
			entries = append(entries, flattenConfig(child, key, depth+1)...)
		} else {
			entries = append(entries, configEntry{key: key, value: child})
		}
	}
	return entries
}

func setNested(root map[string]any, path []string, value any) {
	cur := root
	for i := 0; i < len(path)-1; i++ {
		next, ok := cur[path[i]].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[path[i]] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}
