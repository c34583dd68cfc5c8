package match

// Tier is the discrete confidence level a match was established at. Higher
// tiers are consulted first and stop the search when they produce an
// unambiguous result.
type Tier int

const (
	// TierNone means no match was found or evidence was ambiguous.
	TierNone Tier = iota
	// TierRuntimeID matched on the cached runtime identifier.
	TierRuntimeID
	// TierWindowNumber matched on the stable-per-session OS window number.
	TierWindowNumber
	// TierSignature matched on the role/subrole/title/frame fingerprint.
	TierSignature
	// TierScoredFallback matched via weighted title/role/geometry scoring.
	TierScoredFallback
)

// String returns the diagnostic label for the tier.
func (t Tier) String() string {
	switch t {
	case TierRuntimeID:
		return "runtime_id"
	case TierWindowNumber:
		return "window_number"
	case TierSignature:
		return "signature"
	case TierScoredFallback:
		return "scored_fallback"
	default:
		return "none"
	}
}
