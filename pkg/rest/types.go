// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// IngestDealRequest Сырая заявка от источника
type IngestDealRequest struct {
	Name        string           `json:"name"        validate:"required"`
	Email       string           `json:"email"       validate:"omitempty,email"`
	AssetType   string           `json:"assetType"   validate:"required"`
	Location    string           `json:"location"    validate:"required"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	URL         string           `json:"url"         validate:"omitempty,url"`
	Source      string           `json:"source"`
	Metadata    json.RawMessage  `json:"metadata"`
}

type Scores struct {
	Profit    int `json:"profit"`
	Urgency   int `json:"urgency"`
	Risk      int `json:"risk"`
	Composite int `json:"composite"`
}

// IngestDealResponse Результат приёма заявки
type IngestDealResponse struct {
	DealID         string `json:"dealId"`
	Scores         Scores `json:"scores"`
	Tier           string `json:"tier"`
	Recommendation string `json:"recommendation"`
	MatchCount     int    `json:"matchCount"`
}

type Deal struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	AssetType      string          `json:"assetType"`
	Location       string          `json:"location"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	URL            string          `json:"url,omitempty"`
	Source         string          `json:"source,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	Scores         Scores          `json:"scores"`
	Tier           string          `json:"tier"`
	Recommendation string          `json:"recommendation"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type DealAnalysis struct {
	DealID         string    `json:"dealId"`
	Summary        string    `json:"summary"`
	Recommendation string    `json:"recommendation"`
	Confidence     int       `json:"confidence"`
	Tags           []string  `json:"tags"`
	BuyerMessage   string    `json:"buyerMessage"`
	SellerMessage  string    `json:"sellerMessage"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Match struct {
	ID         string     `json:"id"`
	DealID     string     `json:"dealId"`
	BuyerID    string     `json:"buyerId"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

// RegisterBuyerRequest Регистрация покупателя
type RegisterBuyerRequest struct {
	Name            string           `json:"name"            validate:"required"`
	Email           string           `json:"email"           validate:"required,email"`
	Phone           string           `json:"phone"           validate:"omitempty,e164"`
	AssetTypeFilter string           `json:"assetTypeFilter"`
	LocationFilter  string           `json:"locationFilter"`
	MinBudget       *decimal.Decimal `json:"minBudget"`
	MaxBudget       *decimal.Decimal `json:"maxBudget"`
	PaidTier        string           `json:"paidTier"        validate:"omitempty,oneof=free paid enterprise"`
}

type Buyer struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	AssetTypeFilter string          `json:"assetTypeFilter"`
	LocationFilter  string          `json:"locationFilter"`
	MinBudget       decimal.Decimal `json:"minBudget"`
	MaxBudget       decimal.Decimal `json:"maxBudget"`
	Active          bool            `json:"active"`
	PaidTier        string          `json:"paidTier"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type UpdatePaidTierRequest struct {
	PaidTier string `json:"paidTier" validate:"required"`
}

type UpdateActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type KPIs struct {
	TotalDeals   int             `json:"totalDeals"`
	DealsToday   int             `json:"dealsToday"`
	ActiveBuyers int             `json:"activeBuyers"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Tiers        TierCounts      `json:"tiers"`
	Matches      MatchCounts     `json:"matches"`
}

type TierCounts struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

type MatchCounts struct {
	Matched   int `json:"matched"`
	Contacted int `json:"contacted"`
	Failed    int `json:"failed"`
}

type SweepResult struct {
	Processed int `json:"processed"`
	Contacted int `json:"contacted"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
