package match

// Policy centralizes the scored-fallback weights and geometry thresholds.
type Policy struct {
	ExactTitleScore int
	FuzzyTitleScore int
	RoleBonus       int
	SubroleBonus    int
	TightFrameBonus int
	TightFrameDelta int
	LooseFrameBonus int
	LooseFrameDelta int
}

// DefaultPolicy returns the weights tuned for desktop window populations.
// Exact title agreement dominates; structural and geometric agreement refine.
func DefaultPolicy() Policy {
	return Policy{
		ExactTitleScore: 240,
		FuzzyTitleScore: 130,
		RoleBonus:       55,
		SubroleBonus:    35,
		TightFrameBonus: 60,
		TightFrameDelta: 24,
		LooseFrameBonus: 30,
		LooseFrameDelta: 96,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.ExactTitleScore <= 0 {
		p.ExactTitleScore = d.ExactTitleScore
	}
	if p.FuzzyTitleScore <= 0 || p.FuzzyTitleScore >= p.ExactTitleScore {
		p.FuzzyTitleScore = d.FuzzyTitleScore
	}
	if p.RoleBonus < 0 {
		p.RoleBonus = d.RoleBonus
	}
	if p.SubroleBonus < 0 {
		p.SubroleBonus = d.SubroleBonus
	}
	if p.TightFrameBonus < 0 {
		p.TightFrameBonus = d.TightFrameBonus
	}
	if p.TightFrameDelta <= 0 {
		p.TightFrameDelta = d.TightFrameDelta
	}
	if p.LooseFrameBonus < 0 {
		p.LooseFrameBonus = d.LooseFrameBonus
	}
	if p.LooseFrameDelta <= p.TightFrameDelta {
		p.LooseFrameDelta = d.LooseFrameDelta
	}
	return p
}
