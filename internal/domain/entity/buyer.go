package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"dealflow/internal/domain/value"
)

type Buyer struct {
	ID    value.BuyerID
	Name  string
	Email string
	Phone string

	AssetTypeFilter value.AssetType
	LocationFilter  string
	MinBudget       decimal.Decimal
	MaxBudget       decimal.Decimal

	Active   bool
	PaidTier value.PaidTier

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Buyer) HasPhone() bool {
	return b.Phone != ""
}

// InBudget reports whether price lies in [MinBudget, MaxBudget].
func (b Buyer) InBudget(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(b.MinBudget) && price.LessThanOrEqual(b.MaxBudget)
}

// BillingEvent is a tier change published by the billing system.
type BillingEvent struct {
	EventID  string
	BuyerID  value.BuyerID
	PaidTier value.PaidTier
}
