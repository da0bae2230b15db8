package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
)

const (
	dealColumns = `id, name, email, asset_type, location, price, description, url, source, metadata,
		profit_score, urgency_score, risk_score, composite_score, tier, recommendation, created_at`
	buyerColumns = `id, name, email, phone, asset_type_filter, location_filter, min_budget, max_budget,
		active, paid_tier, created_at, updated_at`
	matchColumns = `id, deal_id, buyer_id, status, created_at, updated_at, notified_at`
)

// dealSchema: представление строки таблицы deals.
type dealSchema struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	AssetType      string          `db:"asset_type"`
	Location       string          `db:"location"`
	Price          decimal.Decimal `db:"price"`
	Description    string          `db:"description"`
	URL            string          `db:"url"`
	Source         string          `db:"source"`
	Metadata       *string         `db:"metadata"`
	ProfitScore    int             `db:"profit_score"`
	UrgencyScore   int             `db:"urgency_score"`
	RiskScore      int             `db:"risk_score"`
	CompositeScore int             `db:"composite_score"`
	Tier           string          `db:"tier"`
	Recommendation string          `db:"recommendation"`
	CreatedAt      time.Time       `db:"created_at"`
}

func fromDeal(d entity.Deal) dealSchema {
	var metadata *string
	if !d.Metadata.IsEmpty() {
		s := d.Metadata.String()
		metadata = &s
	}

	return dealSchema{
		ID:             d.ID.UUID(),
		Name:           d.Name,
		Email:          d.Email,
		AssetType:      d.AssetType.String(),
		Location:       d.Location,
		Price:          d.Price,
		Description:    d.Description,
		URL:            d.URL,
		Source:         d.Source,
		Metadata:       metadata,
		ProfitScore:    d.Scores.Profit,
		UrgencyScore:   d.Scores.Urgency,
		RiskScore:      d.Scores.Risk,
		CompositeScore: d.Scores.Composite,
		Tier:           d.Tier.String(),
		Recommendation: d.Recommendation.String(),
		CreatedAt:      d.CreatedAt,
	}
}

func (s dealSchema) toDomain() entity.Deal {
	var metadata value.Metadata
	if s.Metadata != nil {
		metadata = value.Metadata(*s.Metadata)
	}

	return entity.Deal{
		ID:          value.DealID(s.ID),
		Name:        s.Name,
		Email:       s.Email,
		AssetType:   value.AssetType(s.AssetType),
		Location:    s.Location,
		Price:       s.Price,
		Description: s.Description,
		URL:         s.URL,
		Source:      s.Source,
		Metadata:    metadata,
		Scores: entity.Scores{
			Profit:    s.ProfitScore,
			Urgency:   s.UrgencyScore,
			Risk:      s.RiskScore,
			Composite: s.CompositeScore,
		},
		Tier:           value.Tier(s.Tier),
		Recommendation: value.Recommendation(s.Recommendation),
		CreatedAt:      s.CreatedAt,
	}
}

// buyerSchema: представление строки таблицы buyers.
type buyerSchema struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Email           string          `db:"email"`
	Phone           string          `db:"phone"`
	AssetTypeFilter string          `db:"asset_type_filter"`
	LocationFilter  string          `db:"location_filter"`
	MinBudget       decimal.Decimal `db:"min_budget"`
	MaxBudget       decimal.Decimal `db:"max_budget"`
	Active          bool            `db:"active"`
	PaidTier        string          `db:"paid_tier"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func fromBuyer(b entity.Buyer) buyerSchema {
	return buyerSchema{
		ID:              b.ID.UUID(),
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
		UpdatedAt:       b.UpdatedAt,
	}
}

func (s buyerSchema) toDomain() entity.Buyer {
	return entity.Buyer{
		ID:              value.BuyerID(s.ID),
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		AssetTypeFilter: value.AssetType(s.AssetTypeFilter),
		LocationFilter:  s.LocationFilter,
		MinBudget:       s.MinBudget,
		MaxBudget:       s.MaxBudget,
		Active:          s.Active,
		PaidTier:        value.PaidTier(s.PaidTier),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// matchSchema: представление строки таблицы deal_matches.
type matchSchema struct {
	ID         uuid.UUID  `db:"id"`
	DealID     uuid.UUID  `db:"deal_id"`
	BuyerID    uuid.UUID  `db:"buyer_id"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	NotifiedAt *time.Time `db:"notified_at"`
}

func (s matchSchema) toDomain() entity.Match {
	return entity.Match{
		ID:         value.MatchID(s.ID),
		DealID:     value.DealID(s.DealID),
		BuyerID:    value.BuyerID(s.BuyerID),
		Status:     value.MatchStatus(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		NotifiedAt: s.NotifiedAt,
	}
}

// kpiSchema: агрегаты для отчёта.
type kpiSchema struct {
	TotalDeals   int             `db:"total_deals"`
	DealsToday   int             `db:"deals_today"`
	AveragePrice decimal.Decimal `db:"average_price"`
	GreenDeals   int             `db:"green_deals"`
	YellowDeals  int             `db:"yellow_deals"`
	RedDeals     int             `db:"red_deals"`
}
