package buyer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/internal/metrics"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/logx"
)

//go:generate moq -rm -out buyer_repository_mock.gen.go . BuyerRepository:BuyerRepositoryMock
type BuyerRepository interface {
	// Create fails with BuyerEmailInUse when the email is already registered.
	Create(ctx context.Context, buyer entity.Buyer) (entity.Buyer, error)
	GetByID(ctx context.Context, id value.BuyerID) (entity.Buyer, error)
	ListActive(ctx context.Context) ([]entity.Buyer, error)
	UpdatePaidTier(ctx context.Context, id value.BuyerID, tier value.PaidTier) (entity.Buyer, error)
	UpdateActive(ctx context.Context, id value.BuyerID, active bool) (entity.Buyer, error)
	// ApplyBillingEvent records the event id and updates the tier atomically.
	// applied is false when the event was seen before.
	ApplyBillingEvent(ctx context.Context, event entity.BillingEvent) (applied bool, err error)
}

// Registration is a buyer sign-up. Nil budgets fall back to the defaults.
type Registration struct {
	Name            string
	Email           string
	Phone           string
	AssetTypeFilter string
	LocationFilter  string
	MinBudget       *decimal.Decimal
	MaxBudget       *decimal.Decimal
	PaidTier        string
}

type Service struct {
	repo             BuyerRepository
	validate         *validator.Validate
	defaultMaxBudget decimal.Decimal
}

func NewService(repo BuyerRepository) *Service {
	return &Service{
		repo:             repo,
		validate:         validator.New(),
		defaultMaxBudget: decimal.NewFromInt(10_000_000),
	}
}

func (s *Service) Register(ctx context.Context, reg Registration) (entity.Buyer, error) {
	buyer, err := s.fromRegistration(reg)
	if err != nil {
		return entity.Buyer{}, err
	}

	created, err := s.repo.Create(ctx, buyer)
	if err != nil {
		return entity.Buyer{}, fmt.Errorf("repo.Create: %w", err)
	}

	logger(ctx).Info("buyer registered",
		logx.Stringer(logx.FieldBuyerID, created.ID),
		logx.Stringer(logx.FieldPaidTier, created.PaidTier),
	)

	return created, nil
}

func (s *Service) Get(ctx context.Context, id value.BuyerID) (entity.Buyer, error) {
	buyer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Buyer{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	return buyer, nil
}

func (s *Service) ListActive(ctx context.Context) ([]entity.Buyer, error) {
	buyers, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListActive: %w", err)
	}

	return buyers, nil
}

// SetPaidTier is the administrative override of what billing normally maintains.
func (s *Service) SetPaidTier(ctx context.Context, id value.BuyerID, tier string) (entity.Buyer, error) {
	paidTier, err := value.ParsePaidTier(tier)
	if err != nil {
		return entity.Buyer{}, domain.WrapError(err, errcodes.InvalidPaidTier, "invalid paid tier")
	}

	buyer, err := s.repo.UpdatePaidTier(ctx, id, paidTier)
	if err != nil {
		return entity.Buyer{}, fmt.Errorf("repo.UpdatePaidTier: %w", err)
	}

	logger(ctx).Info("buyer paid tier changed",
		logx.Stringer(logx.FieldBuyerID, id),
		logx.Stringer(logx.FieldPaidTier, paidTier),
	)

	return buyer, nil
}

func (s *Service) SetActive(ctx context.Context, id value.BuyerID, active bool) (entity.Buyer, error) {
	buyer, err := s.repo.UpdateActive(ctx, id, active)
	if err != nil {
		return entity.Buyer{}, fmt.Errorf("repo.UpdateActive: %w", err)
	}

	return buyer, nil
}

// ApplyBillingEvent applies a tier change published by billing. Redelivered
// events are acknowledged without effect.
func (s *Service) ApplyBillingEvent(ctx context.Context, event entity.BillingEvent) error {
	if strings.TrimSpace(event.EventID) == "" {
		metrics.BillingEvents.WithLabelValues("invalid").Inc()
		return domain.NewError(errcodes.InvalidBillingEvent, "event id is required")
	}

	if _, err := value.ParsePaidTier(event.PaidTier.String()); err != nil {
		metrics.BillingEvents.WithLabelValues("invalid").Inc()
		return domain.WrapError(err, errcodes.InvalidBillingEvent, "invalid paid tier")
	}

	applied, err := s.repo.ApplyBillingEvent(ctx, event)
	if err != nil {
		metrics.BillingEvents.WithLabelValues("error").Inc()
		return fmt.Errorf("repo.ApplyBillingEvent: %w", err)
	}

	if !applied {
		metrics.BillingEvents.WithLabelValues("duplicate").Inc()
		logger(ctx).Info("billing event already applied", slog.String("event-id", event.EventID))

		return nil
	}

	metrics.BillingEvents.WithLabelValues("applied").Inc()
	logger(ctx).Info("billing event applied",
		slog.String("event-id", event.EventID),
		logx.Stringer(logx.FieldBuyerID, event.BuyerID),
		logx.Stringer(logx.FieldPaidTier, event.PaidTier),
	)

	return nil
}

func (s *Service) fromRegistration(reg Registration) (entity.Buyer, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return entity.Buyer{}, domain.WrapError(err, errcodes.InvalidBuyer, "invalid email")
	}

	buyer := entity.Buyer{
		ID:              value.NewBuyerID(),
		Name:            strings.TrimSpace(reg.Name),
		Email:           email,
		Phone:           strings.TrimSpace(reg.Phone),
		AssetTypeFilter: value.AssetTypeAny,
		LocationFilter:  strings.TrimSpace(reg.LocationFilter),
		MinBudget:       decimal.Zero,
		MaxBudget:       s.defaultMaxBudget,
		Active:          true,
		PaidTier:        value.PaidTierFree,
	}

	if t := value.NewAssetType(reg.AssetTypeFilter); !t.IsEmpty() {
		buyer.AssetTypeFilter = t
	}

	if reg.MinBudget != nil {
		buyer.MinBudget = *reg.MinBudget
	}

	if reg.MaxBudget != nil {
		buyer.MaxBudget = *reg.MaxBudget
	}

	buyer.MinBudget = value.NormalizeMoney(buyer.MinBudget)
	buyer.MaxBudget = value.NormalizeMoney(buyer.MaxBudget)

	if !value.MoneyInRange(buyer.MinBudget) || !value.MoneyInRange(buyer.MaxBudget) ||
		buyer.MinBudget.GreaterThan(buyer.MaxBudget) {
		return entity.Buyer{}, domain.NewError(errcodes.InvalidBudgetRange, "budget range must satisfy 0 <= min <= max <= "+value.MaxMoney.StringFixed(value.MoneyScale))
	}

	if reg.PaidTier != "" {
		tier, err := value.ParsePaidTier(reg.PaidTier)
		if err != nil {
			return entity.Buyer{}, domain.WrapError(err, errcodes.InvalidPaidTier, "invalid paid tier")
		}

		buyer.PaidTier = tier
	}

	return buyer, nil
}
