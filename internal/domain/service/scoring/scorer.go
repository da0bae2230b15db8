package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
)

const (
	minComposite = 0
	maxComposite = 100
)

// Scorer turns a raw deal into scores and a tier. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	rules Rules
}

func NewScorer(rules Rules) *Scorer {
	return &Scorer{rules: rules}
}

func (s *Scorer) Rules() Rules {
	return s.rules
}

// Score computes all four scores of a deal. It is total: missing text is
// treated as empty and a zero price takes the maximal risk penalty.
func (s *Scorer) Score(deal entity.RawDeal) entity.Scores {
	text := fold(deal.Name + " " + deal.Description)

	profit := s.profit(deal.AssetType, deal.Price)
	urgency := s.urgency(text)
	risk := s.risk(deal.Name, deal.Price, text)

	return entity.Scores{
		Profit:    profit,
		Urgency:   urgency,
		Risk:      risk,
		Composite: clamp(profit+urgency-risk, minComposite, maxComposite),
	}
}

// Evaluate scores and classifies a deal in one step.
func (s *Scorer) Evaluate(deal entity.RawDeal) (entity.Scores, entity.Classification) {
	scores := s.Score(deal)

	return scores, s.Classify(scores.Composite)
}

func (s *Scorer) profit(assetType value.AssetType, price decimal.Decimal) int {
	ladder := s.rules.ladderFor(assetType)

	for _, step := range ladder.Steps {
		if price.LessThan(decimal.NewFromInt(step.Below)) {
			return step.Score
		}
	}

	return ladder.Otherwise
}

func (s *Scorer) urgency(text string) int {
	score := 0

	for _, keyword := range s.rules.UrgencyKeywords {
		if strings.Contains(text, fold(keyword)) {
			score += s.rules.UrgencyPoints
		}
	}

	return min(score, s.rules.UrgencyCap)
}

func (s *Scorer) risk(name string, price decimal.Decimal, text string) int {
	risk := 0

	if !price.IsPositive() {
		risk += s.rules.NonPositivePricePenalty
	}

	if utf8.RuneCountInString(name) < s.rules.ShortNameLength {
		risk += s.rules.ShortNamePenalty
	}

	if price.LessThan(decimal.NewFromInt(s.rules.LowPriceBelow)) {
		risk += s.rules.LowPricePenalty
	}

	for _, phrase := range s.rules.FraudPhrases {
		if strings.Contains(text, fold(phrase)) {
			risk += s.rules.FraudPenalty
			break
		}
	}

	return risk
}

// fold lower-cases text for caseless comparison. A Caser is stateful, so a
// fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
