// ABOUTME: Pure merge and cursor arithmetic for the incoming-message protocol
// ABOUTME: Dedupe by id, re-sort by timestamp, max-based bigint cursor advance
package assistant

import (
	"math/big"
	"sort"

	"github.com/1Lab-vibe/a1-client/models"
)

// Merge appends the entries of batch that are not already in log (by id)
// and re-sorts by timestamp ascending. Applying the same batch twice is a
// no-op. Returns the merged log and the entries actually added.
func Merge(log, batch []models.Message) ([]models.Message, []models.Message) {
	if len(batch) == 0 {
		return log, nil
	}
	seen := make(map[string]bool, len(log))
	for _, msg := range log {
		seen[msg.ID] = true
	}
	var added []models.Message
	for _, msg := range batch {
		if msg.ID == "" || seen[msg.ID] {
			continue
		}
		seen[msg.ID] = true
		added = append(added, msg)
	}
	if len(added) == 0 {
		return log, nil
	}
	merged := make([]models.Message, 0, len(log)+len(added))
	merged = append(merged, log...)
	merged = append(merged, added...)
	// Delivery order is not timestamp order; always re-sort after a merge.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})
	return merged, added
}

// NextCursor returns the cursor after seeing batch: the max of the current
// cursor and every batch id, compared as arbitrary-precision integers.
// Ids are bigint sequence numbers wire-encoded as strings; comparing them
// lexicographically or as floats would mis-order large values. The cursor
// never moves backwards, so a stale poll result cannot regress it.
func NextCursor(current string, batch []models.IncomingMessage) string {
	max := parseCursor(current)
	for _, msg := range batch {
		id := parseCursor(msg.ID)
		if id == nil {
			continue
		}
		if max == nil || id.Cmp(max) > 0 {
			max = id
		}
	}
	if max == nil {
		return current
	}
	return max.String()
}

func parseCursor(s string) *big.Int {
	if s == "" {
		return nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	return n
}
