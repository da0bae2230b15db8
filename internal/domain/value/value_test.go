package value_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain/value"
)

func TestAssetTypeAccepts(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		filter value.AssetType
		deal   value.AssetType
		want   bool
	}{
		{name: "Wildcard", filter: value.AssetTypeAny, deal: value.AssetTypeCar, want: true},
		{name: "Empty filter", filter: "", deal: value.AssetTypeCar, want: true},
		{name: "Same type", filter: value.AssetTypeRealEstate, deal: value.AssetTypeRealEstate, want: true},
		{name: "Other type", filter: value.AssetTypeRealEstate, deal: value.AssetTypeCar, want: false},
		{name: "Normalised input", filter: value.NewAssetType(" Real Estate "), deal: value.AssetTypeRealEstate, want: true},
		{name: "Plural deal type", filter: value.AssetTypeCar, deal: value.NewAssetType("Cars"), want: true},
		{name: "Plural filter", filter: value.NewAssetType("business-assets"), deal: value.AssetTypeBusinessAsset, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, tc.filter.Accepts(tc.deal))
		})
	}
}

func TestNewAssetTypeAliases(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		in   string
		want value.AssetType
	}{
		{in: "cars", want: value.AssetTypeCar},
		{in: "Luxury Items", want: value.AssetTypeLuxury},
		{in: "business_assets", want: value.AssetTypeBusinessAsset},
		{in: "wholesale-products", want: value.AssetTypeWholesaleProduct},
		{in: "boats", want: "boats"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(*testing.T) {
			rq.Equal(tc.want, value.NewAssetType(tc.in))
		})
	}
}

func TestPaidTier(t *testing.T) {
	rq := require.New(t)

	tier, err := value.ParsePaidTier(" Enterprise ")
	rq.NoError(err)
	rq.Equal(value.PaidTierEnterprise, tier)
	rq.True(tier.IsPaying())
	rq.True(value.PaidTierPaid.IsPaying())
	rq.False(value.PaidTierFree.IsPaying())

	_, err = value.ParsePaidTier("gold")
	rq.Error(err)
}

func TestMatchStatusTransitions(t *testing.T) {
	rq := require.New(t)

	rq.True(value.MatchStatusMatched.CanTransitionTo(value.MatchStatusContacted))
	rq.True(value.MatchStatusMatched.CanTransitionTo(value.MatchStatusFailed))
	rq.False(value.MatchStatusMatched.CanTransitionTo(value.MatchStatusMatched))
	rq.False(value.MatchStatusContacted.CanTransitionTo(value.MatchStatusFailed))
	rq.False(value.MatchStatusFailed.CanTransitionTo(value.MatchStatusContacted))
}

func TestParseTier(t *testing.T) {
	rq := require.New(t)

	tier, err := value.ParseTier("green")
	rq.NoError(err)
	rq.Equal(value.TierGreen, tier)

	_, err = value.ParseTier("blue")
	rq.Error(err)
}

func TestMoney(t *testing.T) {
	rq := require.New(t)

	rq.True(value.NormalizeMoney(decimal.RequireFromString("0.004")).IsZero())
	rq.Equal("0.01", value.NormalizeMoney(decimal.RequireFromString("0.005")).String())
	rq.Equal("19.99", value.NormalizeMoney(decimal.RequireFromString("19.989")).String())

	rq.True(value.MoneyInRange(decimal.Zero))
	rq.True(value.MoneyInRange(value.MaxMoney))
	rq.False(value.MoneyInRange(value.MaxMoney.Add(decimal.RequireFromString("0.01"))))
	rq.False(value.MoneyInRange(decimal.NewFromInt(-1)))
}
