// ABOUTME: Local transcript views: clear watermark and date range
// ABOUTME: Pure filters over the log; neither the log nor the cursor is touched
package assistant

import "github.com/1Lab-vibe/a1-client/models"

// Filter restricts which transcript entries a view shows. Active
// conditions are intersected: an entry must pass the clear watermark AND
// the date range.
type Filter struct {
	// Cleared hides everything at or before ClearedAt (the "clear dialog"
	// watermark). ShowAll resets it.
	Cleared   bool
	ClearedAt int64

	// From/To bound timestamps inclusively; zero means unbounded.
	From int64
	To   int64
}

// Clear sets the watermark so that entries up to now disappear.
func (f *Filter) Clear(now int64) {
	f.Cleared = true
	f.ClearedAt = now
}

// ShowAll resets both the watermark and the date range.
func (f *Filter) ShowAll() {
	*f = Filter{}
}

// Apply returns the entries passing every active condition.
func (f Filter) Apply(log []models.Message) []models.Message {
	out := make([]models.Message, 0, len(log))
	for _, msg := range log {
		if f.Cleared && msg.Timestamp <= f.ClearedAt {
			continue
		}
		if f.From != 0 && msg.Timestamp < f.From {
			continue
		}
		if f.To != 0 && msg.Timestamp > f.To {
			continue
		}
		out = append(out, msg)
	}
	return out
}
