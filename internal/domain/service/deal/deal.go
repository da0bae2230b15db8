package deal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/assistant"
	"dealflow/internal/domain/service/matching"
	"dealflow/internal/domain/service/scoring"
	"dealflow/internal/domain/value"
	"dealflow/internal/metrics"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/logx"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

//go:generate moq -rm -out deal_repository_mock.gen.go . DealRepository:DealRepositoryMock
type DealRepository interface {
	// CreateWithMatches stores the deal and one matched row per candidate in a
	// single transaction.
	CreateWithMatches(ctx context.Context, deal entity.Deal, candidates []entity.MatchCandidate) ([]entity.Match, error)
	GetByID(ctx context.Context, id value.DealID) (entity.Deal, error)
	List(ctx context.Context, filter entity.DealFilter) ([]entity.Deal, error)
	KPIs(ctx context.Context, since time.Time) (entity.KPIs, error)
}

//go:generate moq -rm -out buyer_reader_mock.gen.go . BuyerReader:BuyerReaderMock
type BuyerReader interface {
	ListActive(ctx context.Context) ([]entity.Buyer, error)
}

//go:generate moq -rm -out match_reader_mock.gen.go . MatchReader:MatchReaderMock
type MatchReader interface {
	ListByDeal(ctx context.Context, dealID value.DealID) ([]entity.Match, error)
}

// NotificationScheduler asks for prompt delivery of a freshly matched deal.
// The periodic sweep picks the matches up anyway if scheduling fails.
type NotificationScheduler interface {
	ScheduleDeal(ctx context.Context, dealID value.DealID) error
}

type Publisher interface {
	PublishDeal(ctx context.Context, deal entity.Deal, matchCount int)
}

type Service struct {
	deals     DealRepository
	buyers    BuyerReader
	matches   MatchReader
	scorer    *scoring.Scorer
	matcher   *matching.Matcher
	analyzer  *assistant.Analyzer
	scheduler NotificationScheduler
	publisher Publisher
	now       func() time.Time
}

func NewService(
	deals DealRepository,
	buyers BuyerReader,
	matches MatchReader,
	scorer *scoring.Scorer,
	matcher *matching.Matcher,
	analyzer *assistant.Analyzer,
) *Service {
	return &Service{
		deals:    deals,
		buyers:   buyers,
		matches:  matches,
		scorer:   scorer,
		matcher:  matcher,
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (s *Service) WithScheduler(scheduler NotificationScheduler) *Service {
	s.scheduler = scheduler
	return s
}

func (s *Service) WithPublisher(publisher Publisher) *Service {
	s.publisher = publisher
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Ingest validates, scores, classifies and matches a submission, then stores
// the deal together with its matches. Nothing is stored when any step fails.
func (s *Service) Ingest(ctx context.Context, raw entity.RawDeal) (entity.IngestResult, error) {
	raw = normalize(raw)

	if err := validate(raw); err != nil {
		metrics.DealsRejected.Inc()
		return entity.IngestResult{}, err
	}

	scores, class := s.scorer.Evaluate(raw)
	deal := entity.NewDeal(value.NewDealID(), raw, scores, class, s.now().UTC())

	buyers, err := s.buyers.ListActive(ctx)
	if err != nil {
		return entity.IngestResult{}, fmt.Errorf("buyers.ListActive: %w", err)
	}

	candidates := s.matcher.Match(deal, buyers)

	if _, err := s.deals.CreateWithMatches(ctx, deal, candidates); err != nil {
		return entity.IngestResult{}, fmt.Errorf("deals.CreateWithMatches: %w", err)
	}

	logger(ctx).Info("deal ingested",
		logx.Stringer(logx.FieldDealID, deal.ID),
		logx.Stringer(logx.FieldAssetType, deal.AssetType),
		logx.Stringer(logx.FieldTier, deal.Tier),
		slog.Int(logx.FieldCompositeScore, deal.Scores.Composite),
		slog.Int(logx.FieldMatchCount, len(candidates)),
	)

	metrics.DealsIngested.WithLabelValues(deal.Tier.String()).Inc()
	metrics.MatchesCreated.Add(float64(len(candidates)))

	s.afterCommit(ctx, deal, len(candidates))

	return entity.IngestResult{Deal: deal, Matches: candidates}, nil
}

func (s *Service) afterCommit(ctx context.Context, deal entity.Deal, matchCount int) {
	if s.scheduler != nil && matchCount > 0 {
		if err := s.scheduler.ScheduleDeal(ctx, deal.ID); err != nil {
			logger(ctx).Warn("scheduler.ScheduleDeal", logx.Stringer(logx.FieldDealID, deal.ID), logx.Error(err))
		}
	}

	if s.publisher != nil {
		s.publisher.PublishDeal(ctx, deal, matchCount)
	}
}

func (s *Service) Get(ctx context.Context, id value.DealID) (entity.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return entity.Deal{}, fmt.Errorf("deals.GetByID: %w", err)
	}

	return deal, nil
}

func (s *Service) List(ctx context.Context, filter entity.DealFilter) ([]entity.Deal, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, domain.NewError(errcodes.InvalidPaging, "limit and offset must not be negative")
	}

	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}

	filter.Limit = min(filter.Limit, maxListLimit)

	deals, err := s.deals.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("deals.List: %w", err)
	}

	return deals, nil
}

// ListByTier lists deals whose composite score falls into the band of tier.
func (s *Service) ListByTier(ctx context.Context, tier value.Tier, limit int) ([]entity.Deal, error) {
	lo, hi := s.scorer.Band(tier)

	return s.List(ctx, entity.DealFilter{
		MinScore: &lo,
		MaxScore: &hi,
		Limit:    limit,
	})
}

func (s *Service) Analyze(ctx context.Context, id value.DealID) (entity.Analysis, error) {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return entity.Analysis{}, err
	}

	return s.analyzer.Analyze(deal), nil
}

func (s *Service) Matches(ctx context.Context, id value.DealID) ([]entity.Match, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	matches, err := s.matches.ListByDeal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("matches.ListByDeal: %w", err)
	}

	return matches, nil
}

// KPIs reports pipeline totals; "today" starts at UTC midnight.
func (s *Service) KPIs(ctx context.Context) (entity.KPIs, error) {
	since := s.now().UTC().Truncate(24 * time.Hour)

	kpis, err := s.deals.KPIs(ctx, since)
	if err != nil {
		return entity.KPIs{}, fmt.Errorf("deals.KPIs: %w", err)
	}

	return kpis, nil
}

func normalize(raw entity.RawDeal) entity.RawDeal {
	raw.Name = strings.TrimSpace(raw.Name)
	raw.Location = strings.TrimSpace(raw.Location)
	raw.Email = strings.TrimSpace(raw.Email)
	raw.AssetType = value.NewAssetType(raw.AssetType.String())
	raw.Price = value.NormalizeMoney(raw.Price)

	return raw
}

func validate(raw entity.RawDeal) error {
	switch {
	case raw.Name == "":
		return domain.NewError(errcodes.InvalidDeal, "name is required")
	case raw.AssetType.IsEmpty():
		return domain.NewError(errcodes.InvalidAssetType, "asset type is required")
	case raw.Location == "":
		return domain.NewError(errcodes.InvalidDeal, "location is required")
	case raw.Price.IsNegative():
		return domain.NewError(errcodes.InvalidPrice, "price must not be negative")
	case raw.Price.GreaterThan(value.MaxMoney):
		return domain.NewError(errcodes.InvalidPrice, "price exceeds "+value.MaxMoney.StringFixed(value.MoneyScale))
	default:
		return nil
	}
}
