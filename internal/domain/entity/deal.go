package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"dealflow/internal/domain/value"
)

// RawDeal is a submission as it arrives at the ingestion boundary.
type RawDeal struct {
	Name        string
	Email       string
	AssetType   value.AssetType
	Location    string
	Price       decimal.Decimal
	Description string
	URL         string
	Source      string
	Metadata    value.Metadata
}

// Deal is a scored submission. Scores, Tier and Recommendation are computed
// once at ingestion and replaced together if ever recomputed.
type Deal struct {
	ID          value.DealID
	Name        string
	Email       string
	AssetType   value.AssetType
	Location    string
	Price       decimal.Decimal
	Description string
	URL         string
	Source      string
	Metadata    value.Metadata

	Scores         Scores
	Tier           value.Tier
	Recommendation value.Recommendation

	CreatedAt time.Time
}

func NewDeal(id value.DealID, raw RawDeal, scores Scores, class Classification, now time.Time) Deal {
	return Deal{
		ID:             id,
		Name:           raw.Name,
		Email:          raw.Email,
		AssetType:      raw.AssetType,
		Location:       raw.Location,
		Price:          raw.Price,
		Description:    raw.Description,
		URL:            raw.URL,
		Source:         raw.Source,
		Metadata:       raw.Metadata,
		Scores:         scores,
		Tier:           class.Tier,
		Recommendation: class.Recommendation,
		CreatedAt:      now,
	}
}

// Raw returns the submission fields of the deal, e.g. for rescoring.
func (d Deal) Raw() RawDeal {
	return RawDeal{
		Name:        d.Name,
		Email:       d.Email,
		AssetType:   d.AssetType,
		Location:    d.Location,
		Price:       d.Price,
		Description: d.Description,
		URL:         d.URL,
		Source:      d.Source,
		Metadata:    d.Metadata,
	}
}

type DealFilter struct {
	Tier      value.Tier
	AssetType value.AssetType
	MinScore  *int
	MaxScore  *int
	Limit     int
	Offset    int
}

// IngestResult is returned to the caller of the ingestion boundary.
type IngestResult struct {
	Deal    Deal
	Matches []MatchCandidate
}
