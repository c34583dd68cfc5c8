package match

import (
	"sort"
	"strings"

	"winpin/internal/window"
)

type scoredCandidate struct {
	snapshot window.Snapshot
	score    int
	distance int
}

// frameDistanceUnknown orders candidates without comparable frames behind any
// candidate with a measured distance.
const frameDistanceUnknown = int(^uint(0) >> 1)

// matchScoredFallback is the last-resort tier for references carrying no
// usable signature, runtime ID, or window number (legacy or partial data).
// Candidates must pass the normalized-title filter; the strictly highest
// score wins, ties break on exact-frame Manhattan distance, and anything
// still tied is refused rather than guessed.
func (m *Matcher) matchScoredFallback(ref Reference, candidates []window.Snapshot) (window.Snapshot, bool) {
	if ref.NormalizedTitle == "" {
		return window.Snapshot{}, false
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		score, viable := m.scoreCandidate(ref, candidate)
		if !viable {
			continue
		}
		scored = append(scored, scoredCandidate{
			snapshot: candidate,
			score:    score,
			distance: frameDistance(ref.Frame, candidate.Frame),
		})
	}
	if len(scored) == 0 {
		return window.Snapshot{}, false
	}
	if len(scored) == 1 {
		return scored[0].snapshot, true
	}

	// Deterministic evaluation order keeps repeated passes over identical
	// input byte-for-byte reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		return snapshotLess(scored[i].snapshot, scored[j].snapshot)
	})

	best := scored[0]
	runnerUp := scoredCandidate{score: -1, distance: frameDistanceUnknown}
	for _, entry := range scored[1:] {
		if entry.score > best.score ||
			(entry.score == best.score && entry.distance < best.distance) {
			runnerUp = best
			best = entry
			continue
		}
		if entry.score > runnerUp.score ||
			(entry.score == runnerUp.score && entry.distance < runnerUp.distance) {
			runnerUp = entry
		}
	}
	if best.score == runnerUp.score && best.distance == runnerUp.distance {
		// Unresolved tie: prefer missing over wrong.
		return window.Snapshot{}, false
	}
	return best.snapshot, true
}

func (m *Matcher) scoreCandidate(ref Reference, candidate window.Snapshot) (int, bool) {
	candidateTitle := candidate.NormalizedTitle()
	score := 0
	switch {
	case candidateTitle != "" && candidateTitle == ref.NormalizedTitle:
		score = m.policy.ExactTitleScore
	case titlesOverlap(ref.NormalizedTitle, candidateTitle):
		score = m.policy.FuzzyTitleScore
	default:
		return 0, false
	}
	if ref.Role != "" && ref.Role == candidate.Role {
		score += m.policy.RoleBonus
	}
	if ref.Subrole != "" && ref.Subrole == candidate.Subrole {
		score += m.policy.SubroleBonus
	}
	if ref.Frame != nil && candidate.Frame != nil {
		switch delta := ref.Frame.MaxDelta(*candidate.Frame); {
		case delta <= m.policy.TightFrameDelta:
			score += m.policy.TightFrameBonus
		case delta <= m.policy.LooseFrameDelta:
			score += m.policy.LooseFrameBonus
		}
	}
	return score, true
}

func titlesOverlap(reference, candidate string) bool {
	if reference == "" || candidate == "" {
		return false
	}
	return strings.Contains(reference, candidate) || strings.Contains(candidate, reference)
}

func frameDistance(a, b *window.Frame) int {
	if a == nil || b == nil {
		return frameDistanceUnknown
	}
	return a.ManhattanDistance(*b)
}

// snapshotLess is the fully deterministic candidate ordering: OS window
// number, then frame x/y/width/height, then normalized title, then raw
// runtime ID.
func snapshotLess(a, b window.Snapshot) bool {
	if a.OSWindowNumber != b.OSWindowNumber {
		return a.OSWindowNumber < b.OSWindowNumber
	}
	af, bf := a.Frame, b.Frame
	switch {
	case af == nil && bf != nil:
		return false
	case af != nil && bf == nil:
		return true
	case af != nil && bf != nil:
		if af.X != bf.X {
			return af.X < bf.X
		}
		if af.Y != bf.Y {
			return af.Y < bf.Y
		}
		if af.Width != bf.Width {
			return af.Width < bf.Width
		}
		if af.Height != bf.Height {
			return af.Height < bf.Height
		}
	}
	if at, bt := a.NormalizedTitle(), b.NormalizedTitle(); at != bt {
		return at < bt
	}
	return a.RuntimeID < b.RuntimeID
}
