package pins

import (
	"log/slog"

	"winpin/internal/logging"
	"winpin/internal/match"
	"winpin/internal/window"
)

// Reconciler runs the matcher over every stored reference each time the live
// window inventory changes. It is deterministic and synchronous: a pass runs
// to completion from a fixed (references, live windows) input with no I/O.
type Reconciler struct {
	matcher *match.Matcher
	logger  *slog.Logger
}

// NewReconciler constructs a reconciler. A nil logger disables logging.
func NewReconciler(matcher *match.Matcher, logger *slog.Logger) *Reconciler {
	if matcher == nil {
		matcher = match.New(match.DefaultPolicy())
	}
	return &Reconciler{
		matcher: matcher,
		logger:  logging.NewComponentLogger(logger, "reconciler"),
	}
}

// Outcome is the result of one reconciliation pass.
type Outcome struct {
	Items       []Item
	Diagnostics Diagnostics
	// Dirty reports whether any reference's cached fields were refreshed
	// and the list should be persisted.
	Dirty bool
}

// Reconcile processes references in stored order. Stored order is the
// user-visible pin order and doubles as claim priority when two references
// could structurally match the same window. Each live window is claimed by
// at most one reference per pass. On a successful match the reference's
// cached fields are refreshed in place; on failure they are left untouched.
func (r *Reconciler) Reconcile(refs []*Reference, live []window.Snapshot) Outcome {
	outcome := Outcome{
		Items:       make([]Item, 0, len(refs)),
		Diagnostics: newDiagnostics(len(refs)),
	}
	claimed := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		result, ok := r.matcher.FindBestMatch(ref.MatchProfile(), live, claimed)
		if !ok {
			outcome.Items = append(outcome.Items, Item{ID: ref.ID, Reference: *ref})
			outcome.Diagnostics.record(match.TierNone, false)
			continue
		}

		claimed[result.Snapshot.RuntimeID] = struct{}{}
		if ref.refreshFrom(result.Snapshot) {
			outcome.Dirty = true
		}

		snapshot := result.Snapshot
		outcome.Items = append(outcome.Items, Item{
			ID:        ref.ID,
			Reference: *ref,
			Matched:   &snapshot,
			Tier:      result.Tier,
		})
		outcome.Diagnostics.record(result.Tier, true)
	}

	r.logger.Debug("reconcile pass complete",
		logging.Int("references", outcome.Diagnostics.Total),
		logging.Int("matched", outcome.Diagnostics.Matched),
		logging.Int("missing", outcome.Diagnostics.Missing),
		logging.Bool("dirty", outcome.Dirty),
	)
	return outcome
}
