package matching

import (
	"bytes"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
)

const defaultQualityGate = 60

// Reason names the first predicate a buyer failed for a deal.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonInactive  Reason = "inactive"
	ReasonAssetType Reason = "asset_type"
	ReasonLocation  Reason = "location"
	ReasonBudget    Reason = "budget"
	ReasonQuality   Reason = "quality"
	ReasonNotPaying Reason = "not_paying"
)

// Matcher pairs a scored deal with the buyers allowed to receive it.
type Matcher struct {
	qualityGate int
}

func NewMatcher() *Matcher {
	return &Matcher{qualityGate: defaultQualityGate}
}

// WithQualityGate sets the minimal composite score a deal needs to reach any buyer.
func (m *Matcher) WithQualityGate(gate int) *Matcher {
	m.qualityGate = gate
	return m
}

// Match returns one candidate per eligible buyer, in ascending buyer id order.
// Duplicate buyers are collapsed.
func (m *Matcher) Match(deal entity.Deal, buyers []entity.Buyer) []entity.MatchCandidate {
	if deal.Scores.Composite < m.qualityGate {
		return nil
	}

	ordered := slices.Clone(buyers)
	slices.SortStableFunc(ordered, func(a, b entity.Buyer) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	ordered = lo.UniqBy(ordered, func(b entity.Buyer) value.BuyerID { return b.ID })

	candidates := make([]entity.MatchCandidate, 0, len(ordered))

	for _, buyer := range ordered {
		if m.Check(deal, buyer) != ReasonNone {
			continue
		}

		candidates = append(candidates, entity.MatchCandidate{
			DealID:  deal.ID,
			BuyerID: buyer.ID,
		})
	}

	return candidates
}

// Check evaluates every matching predicate and reports the first that fails.
func (m *Matcher) Check(deal entity.Deal, buyer entity.Buyer) Reason {
	switch {
	case !buyer.Active:
		return ReasonInactive
	case !buyer.AssetTypeFilter.Accepts(deal.AssetType):
		return ReasonAssetType
	case !locationMatches(buyer.LocationFilter, deal.Location):
		return ReasonLocation
	case !buyer.InBudget(deal.Price):
		return ReasonBudget
	case deal.Scores.Composite < m.qualityGate:
		return ReasonQuality
	case !buyer.PaidTier.IsPaying():
		return ReasonNotPaying
	default:
		return ReasonNone
	}
}

func locationMatches(filter, location string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}

	return strings.Contains(cases.Fold().String(location), cases.Fold().String(filter))
}
