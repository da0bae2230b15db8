package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/buyer"
	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/value"
	"dealflow/internal/server"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/rest"
	"dealflow/pkg/tests"
)

type dealServiceStub struct {
	ingested []entity.RawDeal
	filters  []entity.DealFilter
	deal     entity.Deal
	matches  []entity.Match
	err      error
}

func (s *dealServiceStub) Ingest(_ context.Context, raw entity.RawDeal) (entity.IngestResult, error) {
	s.ingested = append(s.ingested, raw)
	if s.err != nil {
		return entity.IngestResult{}, s.err
	}

	return entity.IngestResult{
		Deal:    s.deal,
		Matches: []entity.MatchCandidate{{DealID: s.deal.ID, BuyerID: value.NewBuyerID()}},
	}, nil
}

func (s *dealServiceStub) Get(context.Context, value.DealID) (entity.Deal, error) {
	return s.deal, s.err
}

func (s *dealServiceStub) List(_ context.Context, filter entity.DealFilter) ([]entity.Deal, error) {
	s.filters = append(s.filters, filter)
	return []entity.Deal{s.deal}, s.err
}

func (s *dealServiceStub) ListByTier(_ context.Context, tier value.Tier, limit int) ([]entity.Deal, error) {
	s.filters = append(s.filters, entity.DealFilter{Tier: tier, Limit: limit})
	return []entity.Deal{s.deal}, s.err
}

func (s *dealServiceStub) Analyze(context.Context, value.DealID) (entity.Analysis, error) {
	return entity.Analysis{Summary: "ok", Tags: []entity.DealTag{entity.TagMotivatedSeller}}, s.err
}

func (s *dealServiceStub) Matches(context.Context, value.DealID) ([]entity.Match, error) {
	return s.matches, s.err
}

func (s *dealServiceStub) KPIs(context.Context) (entity.KPIs, error) {
	return entity.KPIs{TotalDeals: 3, GreenDeals: 1, Contacted: 2}, s.err
}

type buyerServiceStub struct {
	registered []buyer.Registration
	active     []bool
	err        error
}

func (s *buyerServiceStub) Register(_ context.Context, reg buyer.Registration) (entity.Buyer, error) {
	s.registered = append(s.registered, reg)
	return entity.Buyer{ID: value.NewBuyerID(), Email: reg.Email, PaidTier: value.PaidTierFree}, s.err
}

func (s *buyerServiceStub) ListActive(context.Context) ([]entity.Buyer, error) {
	return nil, s.err
}

func (s *buyerServiceStub) SetPaidTier(_ context.Context, id value.BuyerID, tier string) (entity.Buyer, error) {
	return entity.Buyer{ID: id, PaidTier: value.PaidTier(tier)}, s.err
}

func (s *buyerServiceStub) SetActive(_ context.Context, id value.BuyerID, active bool) (entity.Buyer, error) {
	s.active = append(s.active, active)
	return entity.Buyer{ID: id, Active: active}, s.err
}

type sweeperStub struct {
	err error
}

func (s sweeperStub) Sweep(context.Context) (notification.SweepResult, error) {
	return notification.SweepResult{Processed: 2, Contacted: 1, Failed: 1}, s.err
}

type env struct {
	client tests.APIClient
	deals  *dealServiceStub
	buyers *buyerServiceStub
}

func newEnv(t *testing.T, sweepErr error) env {
	t.Helper()

	deals := &dealServiceStub{
		deal: entity.Deal{
			ID:             value.NewDealID(),
			Name:           "Bungalow",
			AssetType:      value.AssetTypeRealEstate,
			Location:       "Toronto",
			Price:          decimal.NewFromInt(90000),
			Scores:         entity.Scores{Profit: 45, Urgency: 30, Composite: 75},
			Tier:           value.TierYellow,
			Recommendation: value.RecommendationConsider,
			CreatedAt:      time.Now().UTC(),
		},
	}
	buyers := &buyerServiceStub{}

	srv := server.NewServer(
		server.NewDealServer(deals, nil),
		server.NewBuyerServer(buyers),
		server.NewAdminServer(sweeperStub{err: sweepErr}),
	)

	ts := httptest.NewServer(server.NewRouter(srv, nil))
	t.Cleanup(ts.Close)

	return env{
		client: tests.NewAPIClient(ts.URL, ts.Client()),
		deals:  deals,
		buyers: buyers,
	}
}

func TestIngestDeal(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)

	var got rest.IngestDealResponse

	resp, err := e.client.PostJSON(ctx, "/v1/webhooks/deal-ingest", nil, `{
		"name": "Bungalow",
		"assetType": "Real Estate",
		"location": "Toronto",
		"price": 90000,
		"description": "urgent must sell, divorce",
		"metadata": {"listing": 7}
	}`, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	rq.Equal(e.deals.deal.ID.String(), got.DealID)
	rq.Equal(75, got.Scores.Composite)
	rq.Equal("YELLOW", got.Tier)
	rq.Equal("consider", got.Recommendation)
	rq.Equal(1, got.MatchCount)

	rq.Len(e.deals.ingested, 1)
	raw := e.deals.ingested[0]
	rq.Equal(value.AssetTypeRealEstate, raw.AssetType)
	rq.True(raw.Price.Equal(decimal.NewFromInt(90000)))
	rq.JSONEq(`{"listing": 7}`, raw.Metadata.String())
}

func TestIngestDealMissingPrice(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, nil)

	resp, err := e.client.PostJSON(context.Background(), "/v1/webhooks/deal-ingest", nil,
		`{"name":"Old bike","assetType":"car","location":"Austin"}`, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.True(e.deals.ingested[0].Price.IsZero())
}

func TestIngestDealRejected(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		err      error
		wantCode failure.ErrorCode
	}{
		{
			name:     "broken json",
			body:     `{"name":`,
			wantCode: errcodes.ValidationError,
		},
		{
			name:     "missing location",
			body:     `{"name":"Bungalow","assetType":"real_estate"}`,
			wantCode: errcodes.ValidationError,
		},
		{
			name:     "negative price",
			body:     `{"name":"Bungalow","assetType":"real_estate","location":"Toronto","price":-1}`,
			err:      domain.NewError(errcodes.InvalidPrice, "price must not be negative"),
			wantCode: errcodes.InvalidPrice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			e := newEnv(t, nil)
			e.deals.err = tc.err

			var errResp rest.Error

			resp, err := e.client.PostJSON(context.Background(), "/v1/webhooks/deal-ingest", nil, tc.body, nil, &errResp)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(string(tc.wantCode), string(errResp.Code))
			rq.NotEmpty(errResp.SupportID)
		})
	}
}

func TestGetDealErrors(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantCode   failure.ErrorCode
	}{
		{
			name:       "bad id",
			path:       "/v1/deals/not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.InvalidDealID,
		},
		{
			name:       "unknown deal",
			path:       "/v1/deals/" + value.NewDealID().String(),
			err:        domain.NewError(errcodes.DealNotFound, "deal not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   errcodes.DealNotFound,
		},
		{
			name:       "unknown deal matches",
			path:       "/v1/deals/" + value.NewDealID().String() + "/matches",
			err:        domain.NewError(errcodes.DealNotFound, "deal not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   errcodes.DealNotFound,
		},
		{
			name:       "bad tier",
			path:       "/v1/deals/tier/PURPLE",
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.InvalidTier,
		},
		{
			name:       "bad limit",
			path:       "/v1/deals?limit=ten",
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.InvalidPaging,
		},
		{
			name:       "storage failure",
			path:       "/v1/kpis",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   errcodes.InternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			e := newEnv(t, nil)
			e.deals.err = tc.err

			var errResp rest.Error

			resp, err := e.client.Get(context.Background(), tc.path, nil, nil, &errResp)
			rq.NoError(err)
			rq.Equal(tc.wantStatus, resp.StatusCode)
			rq.Equal(string(tc.wantCode), string(errResp.Code))
		})
	}
}

func TestDealQueries(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)

	var deals []rest.Deal

	resp, err := e.client.Get(ctx, "/v1/deals?tier=green&assetType=car&limit=5&offset=10", nil, &deals, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(deals, 1)
	rq.Equal("Bungalow", deals[0].Name)
	rq.Equal(entity.DealFilter{Tier: value.TierGreen, AssetType: value.AssetTypeCar, Limit: 5, Offset: 10}, e.deals.filters[0])

	resp, err = e.client.Get(ctx, "/v1/deals/tier/RED?limit=3", nil, &deals, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(entity.DealFilter{Tier: value.TierRed, Limit: 3}, e.deals.filters[1])

	var analysis rest.DealAnalysis

	resp, err = e.client.Get(ctx, "/v1/deals/"+e.deals.deal.ID.String()+"/analysis", nil, &analysis, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal([]string{"motivated_seller"}, analysis.Tags)
	rq.Equal(e.deals.deal.ID.String(), analysis.DealID)

	var kpis rest.KPIs

	resp, err = e.client.Get(ctx, "/v1/kpis", nil, &kpis, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(3, kpis.TotalDeals)
	rq.Equal(1, kpis.Tiers.Green)
	rq.Equal(2, kpis.Matches.Contacted)
}

func TestBuyerEndpoints(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)

	var b rest.Buyer

	resp, err := e.client.Post(ctx, "/v1/buyers", nil, rest.RegisterBuyerRequest{
		Name:  "Ana",
		Email: "ana@example.com",
		Phone: "+14165550100",
	}, &b, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("ana@example.com", b.Email)
	rq.Equal("free", b.PaidTier)

	resp, err = e.client.Put(ctx, "/v1/buyers/"+b.ID+"/tier", nil, rest.UpdatePaidTierRequest{PaidTier: "paid"}, &b, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("paid", b.PaidTier)

	resp, err = e.client.Put(ctx, "/v1/buyers/"+b.ID+"/active", nil, map[string]any{"active": false}, &b, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal([]bool{false}, e.buyers.active)

	var errResp rest.Error

	resp, err = e.client.Put(ctx, "/v1/buyers/"+b.ID+"/active", nil, map[string]any{}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Len(e.buyers.active, 1)

	resp, err = e.client.Post(ctx, "/v1/buyers", nil, rest.RegisterBuyerRequest{Name: "Bob", Email: "not-an-email"}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Len(e.buyers.registered, 1)
}

func TestBuyerEmailInUse(t *testing.T) {
	rq := require.New(t)
	e := newEnv(t, nil)
	e.buyers.err = domain.NewError(errcodes.BuyerEmailInUse, "email already registered")

	var errResp rest.Error

	resp, err := e.client.Post(context.Background(), "/v1/buyers", nil,
		rest.RegisterBuyerRequest{Name: "Ana", Email: "ana@example.com"}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(string(errcodes.BuyerEmailInUse), string(errResp.Code))
}

func TestAdminSweep(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var result rest.SweepResult

	resp, err := newEnv(t, nil).client.Post(ctx, "/v1/admin/notifications/sweep", nil, struct{}{}, &result, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.SweepResult{Processed: 2, Contacted: 1, Failed: 1}, result)

	var errResp rest.Error

	busy := domain.NewError(errcodes.SweepInProgress, "sweep already running")
	resp, err = newEnv(t, busy).client.Post(ctx, "/v1/admin/notifications/sweep", nil, struct{}{}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(string(errcodes.SweepInProgress), string(errResp.Code))
}

func TestDealStreamDisabled(t *testing.T) {
	rq := require.New(t)

	resp, err := newEnv(t, nil).client.Get(context.Background(), "/v1/deals/stream", nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
}
