package value

import (
	"fmt"
	"strings"
)

// Tier is the coarse quality bucket of a scored deal.
type Tier string

const (
	TierGreen  Tier = "GREEN"
	TierYellow Tier = "YELLOW"
	TierRed    Tier = "RED"
)

func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierGreen, TierYellow, TierRed:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tier %q", s)
	}
}

func (t Tier) String() string {
	return string(t)
}

type Recommendation string

const (
	RecommendationBuyImmediately Recommendation = "buy_immediately"
	RecommendationConsider       Recommendation = "consider"
	RecommendationSkip           Recommendation = "skip"
)

func (r Recommendation) String() string {
	return string(r)
}
