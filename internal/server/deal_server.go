package server

import (
	"context"
	"fmt"
	"net/http"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/pkg/httpx/reply"
	"dealflow/pkg/httpx/req"
	"dealflow/pkg/lox"
	"dealflow/pkg/rest"
)

type dealService interface {
	Ingest(ctx context.Context, raw entity.RawDeal) (entity.IngestResult, error)
	Get(ctx context.Context, id value.DealID) (entity.Deal, error)
	List(ctx context.Context, filter entity.DealFilter) ([]entity.Deal, error)
	ListByTier(ctx context.Context, tier value.Tier, limit int) ([]entity.Deal, error)
	Analyze(ctx context.Context, id value.DealID) (entity.Analysis, error)
	Matches(ctx context.Context, id value.DealID) ([]entity.Match, error)
	KPIs(ctx context.Context) (entity.KPIs, error)
}

type DealServer struct {
	dealService dealService
	stream      http.Handler
}

// NewDealServer; stream may be nil, the live feed route then replies 404.
func NewDealServer(dealService dealService, stream http.Handler) DealServer {
	return DealServer{
		dealService: dealService,
		stream:      stream,
	}
}

func (s DealServer) postV1DealIngest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.IngestDealRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := s.dealService.Ingest(ctx, newDomainRawDeal(request))
	if err != nil {
		return fmt.Errorf("dealService.Ingest: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTIngestResult(result))

	return nil
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	filter := entity.DealFilter{
		AssetType: value.NewAssetType(query.Get("assetType")),
	}

	if raw := query.Get("tier"); raw != "" {
		tier, err := parseTier(raw)
		if err != nil {
			return err
		}

		filter.Tier = tier
	}

	var err error

	if filter.Limit, err = queryInt(query.Get("limit"), "limit"); err != nil {
		return err
	}

	if filter.Offset, err = queryInt(query.Get("offset"), "offset"); err != nil {
		return err
	}

	deals, err := s.dealService.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("dealService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeals(deals))

	return nil
}

func (s DealServer) getV1DealsByTier(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	tier, err := parseTier(r.PathValue("tier"))
	if err != nil {
		return err
	}

	limit, err := queryInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		return err
	}

	deals, err := s.dealService.ListByTier(ctx, tier, limit)
	if err != nil {
		return fmt.Errorf("dealService.ListByTier: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeals(deals))

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseDealID(r.PathValue("id"))
	if err != nil {
		return err
	}

	deal, err := s.dealService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal))

	return nil
}

func (s DealServer) getV1DealAnalysis(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseDealID(r.PathValue("id"))
	if err != nil {
		return err
	}

	analysis, err := s.dealService.Analyze(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.Analyze: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAnalysis(id, analysis))

	return nil
}

func (s DealServer) getV1DealMatches(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseDealID(r.PathValue("id"))
	if err != nil {
		return err
	}

	matches, err := s.dealService.Matches(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.Matches: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(matches, newRESTMatch))

	return nil
}

func (s DealServer) getV1KPIs(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	kpis, err := s.dealService.KPIs(ctx)
	if err != nil {
		return fmt.Errorf("dealService.KPIs: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTKPIs(kpis))

	return nil
}

func (s DealServer) getV1DealStream(w http.ResponseWriter, r *http.Request) {
	if s.stream == nil {
		http.NotFound(w, r)
		return
	}

	s.stream.ServeHTTP(w, r)
}
