package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
)

type DealRepository struct {
	db *sqlx.DB
}

// NewDealRepository создаёт новый экземпляр репозитория сделок.
func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// CreateWithMatches сохраняет сделку и её совпадения в одной транзакции.
// Повторная пара (deal, buyer) пропускается.
func (r *DealRepository) CreateWithMatches(
	ctx context.Context,
	deal entity.Deal,
	candidates []entity.MatchCandidate,
) ([]entity.Match, error) {
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now().UTC()
	}

	matches := make([]entity.Match, 0, len(candidates))

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO deals (` + dealColumns + `)
			VALUES (:id, :name, :email, :asset_type, :location, :price, :description, :url, :source, :metadata,
				:profit_score, :urgency_score, :risk_score, :composite_score, :tier, :recommendation, :created_at)`

		if _, err := tx.NamedExecContext(ctx, query, fromDeal(deal)); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert deal")
		}

		for _, c := range candidates {
			match, created, err := r.insertMatchTx(ctx, tx, c, deal.CreatedAt)
			if err != nil {
				return err
			}

			if created {
				matches = append(matches, match)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *DealRepository) insertMatchTx(
	ctx context.Context,
	tx *sqlx.Tx,
	c entity.MatchCandidate,
	now time.Time,
) (entity.Match, bool, error) {
	query := `
		INSERT INTO deal_matches (id, deal_id, buyer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (deal_id, buyer_id) DO NOTHING
		RETURNING ` + matchColumns

	var schema matchSchema

	err := tx.GetContext(ctx, &schema, query,
		value.NewMatchID().UUID(), c.DealID.UUID(), c.BuyerID.UUID(), value.MatchStatusMatched.String(), now)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Match{}, false, nil
	}

	if err != nil {
		return entity.Match{}, false, domain.WrapError(err, errcodes.InternalServerError, "failed to insert match")
	}

	return schema.toDomain(), true, nil
}

// GetByID возвращает сделку по идентификатору.
func (r *DealRepository) GetByID(ctx context.Context, id value.DealID) (entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, id.UUID()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return entity.Deal{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get deal")
	}

	return schema.toDomain(), nil
}

// List возвращает сделки по фильтру, новые первыми.
func (r *DealRepository) List(ctx context.Context, filter entity.DealFilter) ([]entity.Deal, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(dealColumns).From("deals")

	if filter.Tier != "" {
		sb.Where(sb.Equal("tier", filter.Tier.String()))
	}

	if !filter.AssetType.IsEmpty() {
		sb.Where(sb.Equal("asset_type", filter.AssetType.String()))
	}

	if filter.MinScore != nil {
		sb.Where(sb.GreaterEqualThan("composite_score", *filter.MinScore))
	}

	if filter.MaxScore != nil {
		sb.Where(sb.LessEqualThan("composite_score", *filter.MaxScore))
	}

	sb.OrderBy("created_at").Desc()
	sb.Limit(filter.Limit).Offset(filter.Offset)

	query, args := sb.Build()

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, s := range schemas {
		deals = append(deals, s.toDomain())
	}

	return deals, nil
}

// KPIs собирает сводные показатели конвейера.
func (r *DealRepository) KPIs(ctx context.Context, since time.Time) (entity.KPIs, error) {
	query := `
		SELECT
			count(*)                                       AS total_deals,
			count(*) FILTER (WHERE created_at >= $1)       AS deals_today,
			COALESCE(round(avg(price), 2), 0)              AS average_price,
			count(*) FILTER (WHERE tier = 'GREEN')         AS green_deals,
			count(*) FILTER (WHERE tier = 'YELLOW')        AS yellow_deals,
			count(*) FILTER (WHERE tier = 'RED')           AS red_deals
		FROM deals`

	var schema kpiSchema
	if err := r.db.GetContext(ctx, &schema, query, since); err != nil {
		return entity.KPIs{}, domain.WrapError(err, errcodes.InternalServerError, "failed to aggregate deals")
	}

	kpis := entity.KPIs{
		TotalDeals:   schema.TotalDeals,
		DealsToday:   schema.DealsToday,
		AveragePrice: schema.AveragePrice,
		GreenDeals:   schema.GreenDeals,
		YellowDeals:  schema.YellowDeals,
		RedDeals:     schema.RedDeals,
	}

	if err := r.db.GetContext(ctx, &kpis.ActiveBuyers, `SELECT count(*) FROM buyers WHERE active`); err != nil {
		return entity.KPIs{}, domain.WrapError(err, errcodes.InternalServerError, "failed to count buyers")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("status", "count(*) AS n").From("deal_matches").GroupBy("status")
	statusQuery, args := sb.Build()

	var counts []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &counts, statusQuery, args...); err != nil {
		return entity.KPIs{}, domain.WrapError(err, errcodes.InternalServerError, "failed to count matches")
	}

	for _, c := range counts {
		switch value.MatchStatus(c.Status) {
		case value.MatchStatusMatched:
			kpis.Matched = c.N
		case value.MatchStatusContacted:
			kpis.Contacted = c.N
		case value.MatchStatusFailed:
			kpis.Failed = c.N
		}
	}

	return kpis, nil
}
