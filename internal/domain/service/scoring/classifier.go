package scoring

import (
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
)

// Classify maps a composite score to a tier and recommendation.
func (s *Scorer) Classify(composite int) entity.Classification {
	switch {
	case composite >= s.rules.GreenMin:
		return entity.Classification{Tier: value.TierGreen, Recommendation: value.RecommendationBuyImmediately}
	case composite >= s.rules.YellowMin:
		return entity.Classification{Tier: value.TierYellow, Recommendation: value.RecommendationConsider}
	default:
		return entity.Classification{Tier: value.TierRed, Recommendation: value.RecommendationSkip}
	}
}

// Band returns the inclusive composite range covered by tier.
func (s *Scorer) Band(tier value.Tier) (lo, hi int) {
	switch tier {
	case value.TierGreen:
		return s.rules.GreenMin, maxComposite
	case value.TierYellow:
		return s.rules.YellowMin, s.rules.GreenMin - 1
	default:
		return minComposite, s.rules.YellowMin - 1
	}
}
