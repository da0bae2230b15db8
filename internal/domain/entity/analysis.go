package entity

import "time"

type DealTag string

const (
	TagMotivatedSeller DealTag = "motivated_seller"
	TagUnderpriced     DealTag = "underpriced"
	TagFastFlip        DealTag = "fast_flip"
	TagRareItem        DealTag = "rare_item"
	TagScamRisk        DealTag = "scam_risk"
	TagLowInfo         DealTag = "low_info"
)

type Analysis struct {
	Summary        string
	Recommendation string
	Tags           []DealTag
	BuyerMessage   string
	SellerMessage  string
	Confidence     int
	CreatedAt      time.Time
}
