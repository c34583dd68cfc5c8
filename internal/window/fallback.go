package window

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// fallbackIDPrefix tags synthetic runtime IDs so the matcher can recognize
// them and apply extra caution: occurrence indices depend on enumeration
// order and can swap between passes.
const fallbackIDPrefix = "fallback:"

// IsFallbackID reports whether a runtime ID is a synthetic fallback ID.
func IsFallbackID(id string) bool {
	return strings.HasPrefix(id, fallbackIDPrefix)
}

// FallbackFingerprint derives the stable part of a synthetic runtime ID from
// the owning process, normalized title, and coarsened frame.
func FallbackFingerprint(s Snapshot) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d\x00%s\x00%s", s.OwnerPID, s.NormalizedTitle(), bucketFrame(s.Frame))
	return fmt.Sprintf("%016x", h.Sum64())
}

// AssignFallbackIDs fills in synthetic runtime IDs for snapshots that lack
// one, in place. The Nth window sharing a fingerprint within the pass gets
// occurrence N, so identical inputs always produce identical IDs while
// same-fingerprint siblings stay distinct.
func AssignFallbackIDs(snapshots []Snapshot) {
	occurrences := make(map[string]int)
	for i := range snapshots {
		if strings.TrimSpace(snapshots[i].RuntimeID) != "" {
			continue
		}
		fingerprint := FallbackFingerprint(snapshots[i])
		occurrence := occurrences[fingerprint]
		occurrences[fingerprint] = occurrence + 1
		snapshots[i].RuntimeID = fmt.Sprintf("%s%s:%d", fallbackIDPrefix, fingerprint, occurrence)
	}
}
