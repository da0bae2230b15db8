package entity

import "dealflow/internal/domain/value"

// Scores are always produced together:
// Composite = clamp(Profit + Urgency - Risk, 0, 100).
type Scores struct {
	Profit    int
	Urgency   int
	Risk      int
	Composite int
}

type Classification struct {
	Tier           value.Tier
	Recommendation value.Recommendation
}
