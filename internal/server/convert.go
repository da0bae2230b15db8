package server

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/buyer"
	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/lox"
	"dealflow/pkg/rest"
)

func newDomainRawDeal(r rest.IngestDealRequest) entity.RawDeal {
	price := decimal.Zero
	if r.Price != nil {
		price = *r.Price
	}

	return entity.RawDeal{
		Name:        r.Name,
		Email:       r.Email,
		AssetType:   value.NewAssetType(r.AssetType),
		Location:    r.Location,
		Price:       price,
		Description: r.Description,
		URL:         r.URL,
		Source:      r.Source,
		Metadata:    value.Metadata(r.Metadata),
	}
}

func newRESTScores(s entity.Scores) rest.Scores {
	return rest.Scores{
		Profit:    s.Profit,
		Urgency:   s.Urgency,
		Risk:      s.Risk,
		Composite: s.Composite,
	}
}

func newRESTIngestResult(res entity.IngestResult) rest.IngestDealResponse {
	return rest.IngestDealResponse{
		DealID:         res.Deal.ID.String(),
		Scores:         newRESTScores(res.Deal.Scores),
		Tier:           res.Deal.Tier.String(),
		Recommendation: res.Deal.Recommendation.String(),
		MatchCount:     len(res.Matches),
	}
}

func newRESTDeal(d entity.Deal) rest.Deal {
	var metadata json.RawMessage
	if !d.Metadata.IsEmpty() {
		metadata = json.RawMessage(d.Metadata)
	}

	return rest.Deal{
		ID:             d.ID.String(),
		Name:           d.Name,
		Email:          d.Email,
		AssetType:      d.AssetType.String(),
		Location:       d.Location,
		Price:          d.Price,
		Description:    d.Description,
		URL:            d.URL,
		Source:         d.Source,
		Metadata:       metadata,
		Scores:         newRESTScores(d.Scores),
		Tier:           d.Tier.String(),
		Recommendation: d.Recommendation.String(),
		CreatedAt:      d.CreatedAt,
	}
}

func newRESTDeals(deals []entity.Deal) []rest.Deal {
	return lox.Map(deals, newRESTDeal)
}

func newRESTAnalysis(id value.DealID, a entity.Analysis) rest.DealAnalysis {
	return rest.DealAnalysis{
		DealID:         id.String(),
		Summary:        a.Summary,
		Recommendation: a.Recommendation,
		Confidence:     a.Confidence,
		Tags:           lox.Map(a.Tags, func(t entity.DealTag) string { return string(t) }),
		BuyerMessage:   a.BuyerMessage,
		SellerMessage:  a.SellerMessage,
		CreatedAt:      a.CreatedAt,
	}
}

func newRESTMatch(m entity.Match) rest.Match {
	return rest.Match{
		ID:         m.ID.String(),
		DealID:     m.DealID.String(),
		BuyerID:    m.BuyerID.String(),
		Status:     m.Status.String(),
		CreatedAt:  m.CreatedAt,
		NotifiedAt: m.NotifiedAt,
	}
}

func newDomainRegistration(r rest.RegisterBuyerRequest) buyer.Registration {
	return buyer.Registration{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		AssetTypeFilter: r.AssetTypeFilter,
		LocationFilter:  r.LocationFilter,
		MinBudget:       r.MinBudget,
		MaxBudget:       r.MaxBudget,
		PaidTier:        r.PaidTier,
	}
}

func newRESTBuyer(b entity.Buyer) rest.Buyer {
	return rest.Buyer{
		ID:              b.ID.String(),
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		AssetTypeFilter: b.AssetTypeFilter.String(),
		LocationFilter:  b.LocationFilter,
		MinBudget:       b.MinBudget,
		MaxBudget:       b.MaxBudget,
		Active:          b.Active,
		PaidTier:        b.PaidTier.String(),
		CreatedAt:       b.CreatedAt,
	}
}

func newRESTKPIs(k entity.KPIs) rest.KPIs {
	return rest.KPIs{
		TotalDeals:   k.TotalDeals,
		DealsToday:   k.DealsToday,
		ActiveBuyers: k.ActiveBuyers,
		AveragePrice: k.AveragePrice,
		Tiers: rest.TierCounts{
			Green:  k.GreenDeals,
			Yellow: k.YellowDeals,
			Red:    k.RedDeals,
		},
		Matches: rest.MatchCounts{
			Matched:   k.Matched,
			Contacted: k.Contacted,
			Failed:    k.Failed,
		},
	}
}

func newRESTSweepResult(r notification.SweepResult) rest.SweepResult {
	return rest.SweepResult{
		Processed: r.Processed,
		Contacted: r.Contacted,
		Failed:    r.Failed,
		Skipped:   r.Skipped,
		Errors:    r.Errors,
	}
}

func parseDealID(s string) (value.DealID, error) {
	id, err := value.ParseDealID(s)
	if err != nil {
		return value.DealID{}, domain.WrapError(err, errcodes.InvalidDealID, "invalid deal id")
	}

	return id, nil
}

func parseBuyerID(s string) (value.BuyerID, error) {
	id, err := value.ParseBuyerID(s)
	if err != nil {
		return value.BuyerID{}, domain.WrapError(err, errcodes.InvalidBuyerID, "invalid buyer id")
	}

	return id, nil
}

func parseTier(s string) (value.Tier, error) {
	tier, err := value.ParseTier(s)
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidTier, "invalid tier")
	}

	return tier, nil
}

// queryInt returns 0 for an absent parameter.
func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InvalidPaging, name+" must be an integer")
	}

	return n, nil
}
