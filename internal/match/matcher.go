package match

import (
	"winpin/internal/window"
)

// Reference is the matching-relevant view of a pinned window reference: the
// cached identity signals from its last successful reconciliation.
type Reference struct {
	OwnerBundleID      string
	LastKnownRuntimeID string
	OSWindowNumber     int64
	Role               string
	Subrole            string
	NormalizedTitle    string
	Frame              *window.Frame
	Signature          string
}

// signature returns the cached signature, computing it from the cached
// structural fields when the stored record predates signature caching.
func (r Reference) signature() string {
	if r.Signature != "" {
		return r.Signature
	}
	return window.BuildSignature(r.Role, r.Subrole, r.NormalizedTitle, r.Frame)
}

// Result is the transient output of a successful match.
type Result struct {
	Snapshot window.Snapshot
	Tier     Tier
}

// Matcher decides which live window, if any, a stored reference denotes. It
// is stateless and never guesses: ambiguous evidence yields no result, which
// callers must treat as "currently unmatched" rather than an error.
type Matcher struct {
	policy Policy
}

// New constructs a Matcher with the given policy, falling back to defaults
// for out-of-range values.
func New(policy Policy) *Matcher {
	return &Matcher{policy: policy.normalized()}
}

// FindBestMatch evaluates the strategy tiers in strict priority order against
// the candidates sharing the reference's bundle ID that are not yet claimed.
// The first tier producing an unambiguous result wins; a tier that detects
// genuine ambiguity stops the search entirely.
func (m *Matcher) FindBestMatch(ref Reference, pool []window.Snapshot, claimed map[string]struct{}) (Result, bool) {
	candidates := filterCandidates(ref, pool, claimed)
	if len(candidates) == 0 {
		return Result{}, false
	}

	sig := ref.signature()

	if snapshot, ok := m.matchRuntimeID(ref, sig, candidates); ok {
		return Result{Snapshot: snapshot, Tier: TierRuntimeID}, true
	}

	if snapshot, ok := matchWindowNumber(ref, candidates); ok {
		return Result{Snapshot: snapshot, Tier: TierWindowNumber}, true
	}

	if sig != "" {
		snapshot, ok, ambiguous := matchSignature(sig, candidates)
		if ok {
			return Result{Snapshot: snapshot, Tier: TierSignature}, true
		}
		if ambiguous {
			// Two or more siblings share the fingerprint. Guessing here
			// risks binding the pin to the wrong window, so report missing
			// and let a later pass or an explicit reassign resolve it.
			return Result{}, false
		}
		return Result{}, false
	}

	if snapshot, ok := m.matchScoredFallback(ref, candidates); ok {
		return Result{Snapshot: snapshot, Tier: TierScoredFallback}, true
	}
	return Result{}, false
}

func filterCandidates(ref Reference, pool []window.Snapshot, claimed map[string]struct{}) []window.Snapshot {
	if ref.OwnerBundleID == "" {
		return nil
	}
	out := make([]window.Snapshot, 0, len(pool))
	for _, candidate := range pool {
		if candidate.OwnerBundleID != ref.OwnerBundleID {
			continue
		}
		if _, taken := claimed[candidate.RuntimeID]; taken {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// matchRuntimeID is the highest-confidence tier. Fallback-style IDs are
// positionally derived and can swap meaning when the OS reorders its window
// list, so they are only trusted when the signature (or sheer candidate
// count) corroborates uniqueness.
func (m *Matcher) matchRuntimeID(ref Reference, sig string, candidates []window.Snapshot) (window.Snapshot, bool) {
	if ref.LastKnownRuntimeID == "" {
		return window.Snapshot{}, false
	}
	var found *window.Snapshot
	for i := range candidates {
		if candidates[i].RuntimeID == ref.LastKnownRuntimeID {
			found = &candidates[i]
			break
		}
	}
	if found == nil {
		return window.Snapshot{}, false
	}
	if !window.IsFallbackID(ref.LastKnownRuntimeID) {
		return *found, true
	}
	if sig == "" {
		if len(candidates) == 1 {
			return *found, true
		}
		return window.Snapshot{}, false
	}
	if countSignatureHolders(sig, candidates) < 2 {
		return *found, true
	}
	return window.Snapshot{}, false
}

func matchWindowNumber(ref Reference, candidates []window.Snapshot) (window.Snapshot, bool) {
	if ref.OSWindowNumber <= 0 {
		return window.Snapshot{}, false
	}
	var found *window.Snapshot
	for i := range candidates {
		if candidates[i].OSWindowNumber != ref.OSWindowNumber {
			continue
		}
		if found != nil {
			return window.Snapshot{}, false
		}
		found = &candidates[i]
	}
	if found == nil {
		return window.Snapshot{}, false
	}
	return *found, true
}

// matchSignature reports (match, ok, ambiguous). Exactly one signature holder
// is a match; two or more is genuine ambiguity and must not fall through to
// lower tiers.
func matchSignature(sig string, candidates []window.Snapshot) (window.Snapshot, bool, bool) {
	var found *window.Snapshot
	for i := range candidates {
		if candidates[i].Signature() != sig {
			continue
		}
		if found != nil {
			return window.Snapshot{}, false, true
		}
		found = &candidates[i]
	}
	if found == nil {
		return window.Snapshot{}, false, false
	}
	return *found, true, false
}

func countSignatureHolders(sig string, candidates []window.Snapshot) int {
	count := 0
	for i := range candidates {
		if candidates[i].Signature() == sig {
			count++
		}
	}
	return count
}
