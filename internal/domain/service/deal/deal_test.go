package deal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/assistant"
	"dealflow/internal/domain/service/deal"
	"dealflow/internal/domain/service/matching"
	"dealflow/internal/domain/service/scoring"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
)

type schedulerStub struct {
	dealIDs []value.DealID
	err     error
}

func (s *schedulerStub) ScheduleDeal(_ context.Context, dealID value.DealID) error {
	s.dealIDs = append(s.dealIDs, dealID)
	return s.err
}

type publisherStub struct {
	deals []entity.Deal
}

func (p *publisherStub) PublishDeal(_ context.Context, d entity.Deal, _ int) {
	p.deals = append(p.deals, d)
}

type fixture struct {
	deals     *deal.DealRepositoryMock
	buyers    *deal.BuyerReaderMock
	matches   *deal.MatchReaderMock
	scheduler *schedulerStub
	publisher *publisherStub
	service   *deal.Service
}

func newFixture(buyers ...entity.Buyer) *fixture {
	f := &fixture{
		deals: &deal.DealRepositoryMock{
			CreateWithMatchesFunc: func(_ context.Context, d entity.Deal, candidates []entity.MatchCandidate) ([]entity.Match, error) {
				matches := make([]entity.Match, 0, len(candidates))
				for _, c := range candidates {
					matches = append(matches, entity.Match{
						ID:      value.NewMatchID(),
						DealID:  c.DealID,
						BuyerID: c.BuyerID,
						Status:  value.MatchStatusMatched,
					})
				}
				return matches, nil
			},
		},
		buyers: &deal.BuyerReaderMock{
			ListActiveFunc: func(context.Context) ([]entity.Buyer, error) { return buyers, nil },
		},
		matches:   &deal.MatchReaderMock{},
		scheduler: &schedulerStub{},
		publisher: &publisherStub{},
	}

	f.service = deal.NewService(
		f.deals,
		f.buyers,
		f.matches,
		scoring.NewScorer(scoring.DefaultRules()),
		matching.NewMatcher(),
		assistant.NewAnalyzer(),
	).WithScheduler(f.scheduler).WithPublisher(f.publisher)

	return f
}

func paidTorontoBuyer() entity.Buyer {
	return entity.Buyer{
		ID:              value.NewBuyerID(),
		Email:           "investor@example.com",
		AssetTypeFilter: value.AssetTypeRealEstate,
		LocationFilter:  "toronto",
		MinBudget:       decimal.NewFromInt(50_000),
		MaxBudget:       decimal.NewFromInt(150_000),
		Active:          true,
		PaidTier:        value.PaidTierPaid,
	}
}

func motivatedSeller() entity.RawDeal {
	return entity.RawDeal{
		Name:        " Bungalow ",
		AssetType:   "Real Estate",
		Location:    "Toronto",
		Price:       decimal.NewFromInt(90_000),
		Description: "urgent must sell, divorce",
		Metadata:    value.Metadata(`{"listing":42}`),
	}
}

func TestServiceIngest(t *testing.T) {
	rq := require.New(t)
	buyer := paidTorontoBuyer()
	f := newFixture(buyer)

	result, err := f.service.Ingest(context.Background(), motivatedSeller())
	rq.NoError(err)

	rq.Equal("Bungalow", result.Deal.Name)
	rq.Equal(value.AssetTypeRealEstate, result.Deal.AssetType)
	rq.Equal(entity.Scores{Profit: 45, Urgency: 30, Risk: 0, Composite: 75}, result.Deal.Scores)
	rq.Equal(value.TierYellow, result.Deal.Tier)
	rq.Equal(value.RecommendationConsider, result.Deal.Recommendation)
	rq.Equal(value.Metadata(`{"listing":42}`), result.Deal.Metadata)
	rq.Equal([]entity.MatchCandidate{{DealID: result.Deal.ID, BuyerID: buyer.ID}}, result.Matches)

	calls := f.deals.CreateWithMatchesCalls()
	rq.Len(calls, 1)
	rq.Equal(result.Deal, calls[0].Deal)
	rq.Equal(result.Matches, calls[0].Candidates)

	rq.Equal([]value.DealID{result.Deal.ID}, f.scheduler.dealIDs)
	rq.Equal([]entity.Deal{result.Deal}, f.publisher.deals)
}

func TestServiceIngestWithoutMatches(t *testing.T) {
	rq := require.New(t)
	buyer := paidTorontoBuyer()
	buyer.PaidTier = value.PaidTierFree
	f := newFixture(buyer)

	result, err := f.service.Ingest(context.Background(), motivatedSeller())
	rq.NoError(err)
	rq.Empty(result.Matches)
	rq.Len(f.deals.CreateWithMatchesCalls(), 1)
	rq.Empty(f.scheduler.dealIDs)
	rq.Len(f.publisher.deals, 1)
}

func TestServiceIngestValidation(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		modify func(*entity.RawDeal)
		code   string
	}{
		{name: "Missing name", modify: func(d *entity.RawDeal) { d.Name = "  " }, code: string(errcodes.InvalidDeal)},
		{name: "Missing asset type", modify: func(d *entity.RawDeal) { d.AssetType = "" }, code: string(errcodes.InvalidAssetType)},
		{name: "Missing location", modify: func(d *entity.RawDeal) { d.Location = "" }, code: string(errcodes.InvalidDeal)},
		{name: "Negative price", modify: func(d *entity.RawDeal) { d.Price = decimal.NewFromInt(-1) }, code: string(errcodes.InvalidPrice)},
		{name: "Price above column range", modify: func(d *entity.RawDeal) { d.Price = decimal.New(1, 13) }, code: string(errcodes.InvalidPrice)},
		{name: "Rounded price above column range", modify: func(d *entity.RawDeal) { d.Price = decimal.RequireFromString("999999999999.995") }, code: string(errcodes.InvalidPrice)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			f := newFixture(paidTorontoBuyer())
			raw := motivatedSeller()
			tc.modify(&raw)

			_, err := f.service.Ingest(context.Background(), raw)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, string(code))
			rq.Empty(f.buyers.ListActiveCalls())
			rq.Empty(f.deals.CreateWithMatchesCalls())
		})
	}
}

func TestServiceIngestZeroPriceIsAccepted(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	raw := motivatedSeller()
	raw.Price = decimal.Zero

	result, err := f.service.Ingest(context.Background(), raw)
	rq.NoError(err)
	rq.GreaterOrEqual(result.Deal.Scores.Risk, 30)
}

func TestServiceIngestRoundsPriceBeforeScoring(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name      string
		price     string
		wantPrice string
		wantRisk  int
	}{
		{name: "Sub-cent price is zero", price: "0.004", wantPrice: "0", wantRisk: 55},
		{name: "Half cent rounds up", price: "0.005", wantPrice: "0.01", wantRisk: 25},
		{name: "Regular price keeps cents", price: "89999.994", wantPrice: "89999.99", wantRisk: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			f := newFixture()
			raw := motivatedSeller()
			raw.Price = decimal.RequireFromString(tc.price)

			result, err := f.service.Ingest(context.Background(), raw)
			rq.NoError(err)
			rq.Equal(tc.wantPrice, result.Deal.Price.String())
			rq.Equal(tc.wantRisk, result.Deal.Scores.Risk)

			calls := f.deals.CreateWithMatchesCalls()
			rq.Len(calls, 1)
			rq.True(calls[0].Deal.Price.Equal(result.Deal.Price))
		})
	}
}

func TestServiceIngestPersistenceFailure(t *testing.T) {
	rq := require.New(t)
	f := newFixture(paidTorontoBuyer())
	f.deals.CreateWithMatchesFunc = func(context.Context, entity.Deal, []entity.MatchCandidate) ([]entity.Match, error) {
		return nil, domain.WrapError(errors.New("connection reset"), errcodes.InternalServerError, "create deal")
	}

	_, err := f.service.Ingest(context.Background(), motivatedSeller())
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.InternalServerError))
	rq.Empty(f.scheduler.dealIDs)
	rq.Empty(f.publisher.deals)
}

func TestServiceIngestSchedulerFailure(t *testing.T) {
	rq := require.New(t)
	f := newFixture(paidTorontoBuyer())
	f.scheduler.err = errors.New("redis unavailable")

	result, err := f.service.Ingest(context.Background(), motivatedSeller())
	rq.NoError(err)
	rq.Len(result.Matches, 1)
}

func TestServiceListByTier(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	f.deals.ListFunc = func(context.Context, entity.DealFilter) ([]entity.Deal, error) { return nil, nil }

	_, err := f.service.ListByTier(context.Background(), value.TierYellow, 0)
	rq.NoError(err)

	_, err = f.service.List(context.Background(), entity.DealFilter{Limit: 10_000})
	rq.NoError(err)

	calls := f.deals.ListCalls()
	rq.Len(calls, 2)
	rq.Equal(60, *calls[0].Filter.MinScore)
	rq.Equal(79, *calls[0].Filter.MaxScore)
	rq.Equal(50, calls[0].Filter.Limit)
	rq.Equal(500, calls[1].Filter.Limit)

	_, err = f.service.List(context.Background(), entity.DealFilter{Offset: -1})
	rq.True(domain.HasCode(err, errcodes.InvalidPaging))
}

func TestServiceMatchesOfUnknownDeal(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	f.deals.GetByIDFunc = func(context.Context, value.DealID) (entity.Deal, error) {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}

	_, err := f.service.Matches(context.Background(), value.NewDealID())
	rq.True(domain.HasCode(err, errcodes.DealNotFound))
	rq.Empty(f.matches.ListByDealCalls())

	_, err = f.service.Analyze(context.Background(), value.NewDealID())
	rq.True(domain.HasCode(err, errcodes.DealNotFound))
}

func TestServiceKPIsSinceMidnight(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	now := time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC)
	f.service.WithClock(func() time.Time { return now })
	f.deals.KPIsFunc = func(context.Context, time.Time) (entity.KPIs, error) {
		return entity.KPIs{TotalDeals: 3}, nil
	}

	kpis, err := f.service.KPIs(context.Background())
	rq.NoError(err)
	rq.Equal(3, kpis.TotalDeals)
	rq.Equal(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), f.deals.KPIsCalls()[0].Since)
}
