package pins

import (
	"winpin/internal/match"
	"winpin/internal/window"
)

// Item pairs a reference with the live window it currently resolves to, if
// any. Items are rebuilt on every reconciliation pass.
type Item struct {
	ID        string           `json:"id"`
	Reference Reference        `json:"reference"`
	Matched   *window.Snapshot `json:"matched,omitempty"`
	Tier      match.Tier       `json:"tier"`
}

// IsMissing reports whether the reference failed to resolve this pass.
func (i Item) IsMissing() bool {
	return i.Matched == nil
}

// Diagnostics aggregates per-pass reconciliation telemetry. It is read-only
// observability data, never a control input.
type Diagnostics struct {
	Total      int            `json:"total"`
	Matched    int            `json:"matched"`
	Missing    int            `json:"missing"`
	TierCounts map[string]int `json:"tier_counts"`
}

func newDiagnostics(total int) Diagnostics {
	return Diagnostics{Total: total, TierCounts: make(map[string]int)}
}

func (d *Diagnostics) record(tier match.Tier, matched bool) {
	if !matched {
		d.Missing++
		return
	}
	d.Matched++
	d.TierCounts[tier.String()]++
}
