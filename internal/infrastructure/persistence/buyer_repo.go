package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
)

const buyersEmailKey = "buyers_email_key"

type BuyerRepository struct {
	db *sqlx.DB
}

// NewBuyerRepository создаёт новый экземпляр репозитория покупателей.
func NewBuyerRepository(db *sqlx.DB) *BuyerRepository {
	return &BuyerRepository{db: db}
}

// Create регистрирует покупателя. Email уникален.
func (r *BuyerRepository) Create(ctx context.Context, buyer entity.Buyer) (entity.Buyer, error) {
	now := time.Now().UTC()
	buyer.CreatedAt, buyer.UpdatedAt = now, now

	query := `
		INSERT INTO buyers (` + buyerColumns + `)
		VALUES (:id, :name, :email, :phone, :asset_type_filter, :location_filter, :min_budget, :max_budget,
			:active, :paid_tier, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, fromBuyer(buyer)); err != nil {
		if isUniqueViolation(err, buyersEmailKey) {
			return entity.Buyer{}, domain.WrapError(err, errcodes.BuyerEmailInUse, "email already registered")
		}
		return entity.Buyer{}, domain.WrapError(err, errcodes.InternalServerError, "failed to insert buyer")
	}

	return buyer, nil
}

func (r *BuyerRepository) GetByID(ctx context.Context, id value.BuyerID) (entity.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE id = $1`

	var schema buyerSchema
	if err := r.db.GetContext(ctx, &schema, query, id.UUID()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Buyer{}, domain.NewError(errcodes.BuyerNotFound, "buyer not found")
		}
		return entity.Buyer{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get buyer")
	}

	return schema.toDomain(), nil
}

// ListActive возвращает активных покупателей в порядке возрастания id.
func (r *BuyerRepository) ListActive(ctx context.Context) ([]entity.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE active ORDER BY id`

	var schemas []buyerSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list buyers")
	}

	buyers := make([]entity.Buyer, 0, len(schemas))
	for _, s := range schemas {
		buyers = append(buyers, s.toDomain())
	}

	return buyers, nil
}

func (r *BuyerRepository) UpdatePaidTier(ctx context.Context, id value.BuyerID, tier value.PaidTier) (entity.Buyer, error) {
	return r.update(ctx, `
		UPDATE buyers SET paid_tier = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+buyerColumns, id.UUID(), tier.String())
}

func (r *BuyerRepository) UpdateActive(ctx context.Context, id value.BuyerID, active bool) (entity.Buyer, error) {
	return r.update(ctx, `
		UPDATE buyers SET active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+buyerColumns, id.UUID(), active)
}

// ApplyBillingEvent фиксирует событие биллинга и меняет тариф атомарно.
// Повторно доставленное событие ничего не меняет.
func (r *BuyerRepository) ApplyBillingEvent(ctx context.Context, event entity.BillingEvent) (bool, error) {
	applied := false

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO billing_events (event_id, buyer_id, paid_tier)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id) DO NOTHING`,
			event.EventID, event.BuyerID.UUID(), event.PaidTier.String())
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to record billing event")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			return nil
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE buyers SET paid_tier = $2, updated_at = now()
			WHERE id = $1`,
			event.BuyerID.UUID(), event.PaidTier.String())
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update paid tier")
		}

		if err := expectOne(res, domain.NewError(errcodes.BuyerNotFound, "buyer not found")); err != nil {
			return err
		}

		applied = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

func (r *BuyerRepository) update(ctx context.Context, query string, args ...any) (entity.Buyer, error) {
	var schema buyerSchema
	if err := r.db.GetContext(ctx, &schema, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Buyer{}, domain.NewError(errcodes.BuyerNotFound, "buyer not found")
		}
		return entity.Buyer{}, domain.WrapError(err, errcodes.InternalServerError, "failed to update buyer")
	}

	return schema.toDomain(), nil
}
