package persistence_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/internal/infrastructure/persistence"
	"dealflow/pkg/dbtest"
	"dealflow/pkg/errcodes"
)

var (
	ana = value.BuyerID(uuid.MustParse("00000000-0000-0000-0000-000000000001"))
	ben = value.BuyerID(uuid.MustParse("00000000-0000-0000-0000-000000000002"))
)

func TestRepositories(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := dbtest.Postgres(t)
	rq.NoError(persistence.Migrate(db))
	rq.NoError(persistence.Migrate(db))
	rq.NoError(dbtest.MigrateFromFile(db, "testdata/buyers.sql"))

	deals := persistence.NewDealRepository(db)
	buyers := persistence.NewBuyerRepository(db)
	matches := persistence.NewMatchRepository(db)

	active, err := buyers.ListActive(ctx)
	rq.NoError(err)
	rq.Len(active, 2)
	rq.Equal(ana, active[0].ID)
	rq.Equal(ben, active[1].ID)
	rq.True(active[1].MaxBudget.Equal(decimal.NewFromInt(150_000)))

	_, err = buyers.Create(ctx, entity.Buyer{
		ID:              value.NewBuyerID(),
		Email:           "ana@example.com",
		AssetTypeFilter: value.AssetTypeAny,
		MaxBudget:       decimal.NewFromInt(1),
		PaidTier:        value.PaidTierFree,
	})
	rq.True(domain.HasCode(err, errcodes.BuyerEmailInUse))

	deal := entity.Deal{
		ID:             value.NewDealID(),
		Name:           "Bungalow",
		AssetType:      value.AssetTypeRealEstate,
		Location:       "Toronto",
		Price:          decimal.RequireFromString("90000.50"),
		Description:    "urgent must sell, divorce",
		Metadata:       value.Metadata(`{"listing": 42}`),
		Scores:         entity.Scores{Profit: 45, Urgency: 30, Composite: 75},
		Tier:           value.TierYellow,
		Recommendation: value.RecommendationConsider,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	created, err := deals.CreateWithMatches(ctx, deal, []entity.MatchCandidate{
		{DealID: deal.ID, BuyerID: ana},
		{DealID: deal.ID, BuyerID: ben},
		{DealID: deal.ID, BuyerID: ben},
	})
	rq.NoError(err)
	rq.Len(created, 2)

	stored, err := deals.GetByID(ctx, deal.ID)
	rq.NoError(err)
	rq.Equal(deal.Scores, stored.Scores)
	rq.True(deal.Price.Equal(stored.Price))
	rq.JSONEq(`{"listing": 42}`, stored.Metadata.String())

	_, err = deals.GetByID(ctx, value.NewDealID())
	rq.True(domain.HasCode(err, errcodes.DealNotFound))

	lo, hi := 60, 79
	listed, err := deals.List(ctx, entity.DealFilter{MinScore: &lo, MaxScore: &hi, Limit: 10})
	rq.NoError(err)
	rq.Len(listed, 1)

	listed, err = deals.List(ctx, entity.DealFilter{Tier: value.TierGreen, Limit: 10})
	rq.NoError(err)
	rq.Empty(listed)

	pending, err := matches.ListPending(ctx, 10)
	rq.NoError(err)
	rq.Len(pending, 2)
	rq.Equal("Bungalow", pending[0].Deal.Name)

	var deliveries atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range pending {
				_, _ = matches.Settle(ctx, p.Match.ID, func(context.Context) value.MatchStatus {
					deliveries.Add(1)
					return value.MatchStatusContacted
				})
			}
		}()
	}
	wg.Wait()
	rq.Equal(int32(2), deliveries.Load())

	rows, err := matches.ListByDeal(ctx, deal.ID)
	rq.NoError(err)
	rq.Len(rows, 2)
	for _, m := range rows {
		rq.Equal(value.MatchStatusContacted, m.Status)
		rq.NotNil(m.NotifiedAt)
	}

	pending, err = matches.ListPending(ctx, 10)
	rq.NoError(err)
	rq.Empty(pending)

	kpis, err := deals.KPIs(ctx, time.Now().UTC().Add(-time.Hour))
	rq.NoError(err)
	rq.Equal(1, kpis.TotalDeals)
	rq.Equal(1, kpis.DealsToday)
	rq.Equal(2, kpis.ActiveBuyers)
	rq.Equal(1, kpis.YellowDeals)
	rq.Equal(2, kpis.Contacted)

	event := entity.BillingEvent{EventID: "evt_1", BuyerID: ben, PaidTier: value.PaidTierFree}

	applied, err := buyers.ApplyBillingEvent(ctx, event)
	rq.NoError(err)
	rq.True(applied)

	applied, err = buyers.ApplyBillingEvent(ctx, event)
	rq.NoError(err)
	rq.False(applied)

	_, err = buyers.ApplyBillingEvent(ctx, entity.BillingEvent{EventID: "evt_2", BuyerID: value.NewBuyerID(), PaidTier: value.PaidTierPaid})
	rq.True(domain.HasCode(err, errcodes.BuyerNotFound))

	updated, err := buyers.GetByID(ctx, ben)
	rq.NoError(err)
	rq.Equal(value.PaidTierFree, updated.PaidTier)

	updated, err = buyers.UpdateActive(ctx, ben, false)
	rq.NoError(err)
	rq.False(updated.Active)

	_, err = buyers.UpdatePaidTier(ctx, value.NewBuyerID(), value.PaidTierPaid)
	rq.True(domain.HasCode(err, errcodes.BuyerNotFound))
}
