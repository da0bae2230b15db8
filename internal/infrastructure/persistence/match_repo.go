package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
)

type MatchRepository struct {
	db *sqlx.DB
}

// NewMatchRepository создаёт новый экземпляр репозитория совпадений.
func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByDeal(ctx context.Context, dealID value.DealID) ([]entity.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM deal_matches WHERE deal_id = $1 ORDER BY buyer_id`

	var schemas []matchSchema
	if err := r.db.SelectContext(ctx, &schemas, query, dealID.UUID()); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list matches")
	}

	return lo.Map(schemas, func(s matchSchema, _ int) entity.Match { return s.toDomain() }), nil
}

// ListPending возвращает самые старые совпадения в статусе matched.
func (r *MatchRepository) ListPending(ctx context.Context, limit int) ([]entity.PendingNotification, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM deal_matches
		WHERE status = 'matched'
		ORDER BY created_at, id
		LIMIT $1`

	var schemas []matchSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list pending matches")
	}

	return r.withDetails(ctx, schemas)
}

func (r *MatchRepository) ListPendingByDeal(ctx context.Context, dealID value.DealID) ([]entity.PendingNotification, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM deal_matches
		WHERE status = 'matched' AND deal_id = $1
		ORDER BY buyer_id`

	var schemas []matchSchema
	if err := r.db.SelectContext(ctx, &schemas, query, dealID.UUID()); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list pending matches")
	}

	return r.withDetails(ctx, schemas)
}

// Settle блокирует совпадение, если оно ещё в статусе matched и не занято
// другим обработчиком, вызывает deliver и сохраняет итоговый статус.
func (r *MatchRepository) Settle(
	ctx context.Context,
	matchID value.MatchID,
	deliver func(context.Context) value.MatchStatus,
) (bool, error) {
	settled := false

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var status string

		err := tx.GetContext(ctx, &status, `
			SELECT status FROM deal_matches
			WHERE id = $1 AND status = 'matched'
			FOR UPDATE SKIP LOCKED`, matchID.UUID())
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to lock match")
		}

		next := deliver(ctx)
		if !value.MatchStatusMatched.CanTransitionTo(next) {
			return domain.NewError(errcodes.MatchAlreadyClosed, "invalid match status transition")
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE deal_matches
			SET status = $2, updated_at = now(), notified_at = now()
			WHERE id = $1 AND status = 'matched'`, matchID.UUID(), next.String())
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update match status")
		}

		if err := expectOne(res, domain.NewError(errcodes.MatchAlreadyClosed, "match already settled")); err != nil {
			return err
		}

		settled = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return settled, nil
}

// withDetails подгружает сделки и покупателей для списка совпадений.
func (r *MatchRepository) withDetails(ctx context.Context, schemas []matchSchema) ([]entity.PendingNotification, error) {
	if len(schemas) == 0 {
		return nil, nil
	}

	dealIDs := lo.Uniq(lo.Map(schemas, func(s matchSchema, _ int) uuid.UUID { return s.DealID }))
	buyerIDs := lo.Uniq(lo.Map(schemas, func(s matchSchema, _ int) uuid.UUID { return s.BuyerID }))

	var deals []dealSchema
	if err := r.selectIn(ctx, &deals, `SELECT `+dealColumns+` FROM deals WHERE id IN (?)`, dealIDs); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to load deals")
	}

	var buyers []buyerSchema
	if err := r.selectIn(ctx, &buyers, `SELECT `+buyerColumns+` FROM buyers WHERE id IN (?)`, buyerIDs); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to load buyers")
	}

	dealByID := lo.KeyBy(deals, func(s dealSchema) uuid.UUID { return s.ID })
	buyerByID := lo.KeyBy(buyers, func(s buyerSchema) uuid.UUID { return s.ID })

	out := make([]entity.PendingNotification, 0, len(schemas))

	for _, s := range schemas {
		deal, okDeal := dealByID[s.DealID]
		buyer, okBuyer := buyerByID[s.BuyerID]

		if !okDeal || !okBuyer {
			continue
		}

		out = append(out, entity.PendingNotification{
			Match: s.toDomain(),
			Deal:  deal.toDomain(),
			Buyer: buyer.toDomain(),
		})
	}

	return out, nil
}

func (r *MatchRepository) selectIn(ctx context.Context, dest any, query string, ids []uuid.UUID) error {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}

	return r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...)
}
