package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"offers-service/internal/domain/offer"
	"offers-service/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repository needs; pgx transactions
// satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const offerColumns = "id, description, price, currency, expiration_date, cancelled"

// OfferRepository is the sole reader/writer of the offers table. It performs
// no validation of prices or dates; malformed ranges compose literally and may
// simply match nothing.
type OfferRepository struct {
	db DBTX
}

func NewOfferRepository(db DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

// Save upserts by id, assigning one when absent. A duplicate save with an
// explicit id overwrites the stored record. The returned offer carries no
// expiration annotation; that happens at the usecase boundary.
func (r *OfferRepository) Save(ctx context.Context, o offer.Offer) (offer.Offer, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO offers (id, description, price, currency, expiration_date, cancelled)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			description     = EXCLUDED.description,
			price           = EXCLUDED.price,
			currency        = EXCLUDED.currency,
			expiration_date = EXCLUDED.expiration_date,
			cancelled       = EXCLUDED.cancelled`,
		o.ID, o.Description, o.Price, o.Currency, o.ExpirationDate, o.Cancelled)
	if err != nil {
		return offer.Offer{}, infra.WrapRepoErr("failed to save offer", err)
	}
	return o, nil
}

// FindByID fetches an active offer. A cancelled offer is indistinguishable
// from a nonexistent one.
func (r *OfferRepository) FindByID(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id = $1 AND NOT cancelled`, id)

	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return offer.Offer{}, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return offer.Offer{}, infra.WrapRepoErr("failed to find offer by id", err)
	}
	return o, nil
}

// Search folds the present predicates of s into one conjunctive WHERE clause,
// always including NOT cancelled. With no predicates it returns every active
// offer. ORDER BY id keeps output stable for a fixed store state; callers get
// no further ordering guarantee.
func (r *OfferRepository) Search(ctx context.Context, s offer.Search) ([]offer.Offer, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + offerColumns + ` FROM offers WHERE NOT cancelled`)

	and := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}

	if s.Description != nil {
		and("description ILIKE $%d", "%"+*s.Description+"%")
	}
	if s.Currency != nil {
		and("currency = $%d", *s.Currency)
	}
	if s.PriceStart != nil {
		and("price >= $%d", *s.PriceStart)
	}
	if s.PriceEnd != nil {
		and("price <= $%d", *s.PriceEnd)
	}
	if s.DateStart != nil {
		and("expiration_date >= $%d", *s.DateStart)
	}
	if s.DateEnd != nil {
		and("expiration_date <= $%d", *s.DateEnd)
	}
	sb.WriteString(" ORDER BY id")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search offers", err)
	}
	defer rows.Close()

	offers := []offer.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read offer rows", err)
	}
	return offers, nil
}

// Cancel flips the cancelled flag in a single conditional update, so two
// concurrent cancels of the same id cannot both report success. Returns false
// when no active offer has that id, which covers both "never existed" and
// "already cancelled".
func (r *OfferRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE offers SET cancelled = TRUE WHERE id = $1 AND NOT cancelled`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel offer", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOffer(row pgx.Row) (offer.Offer, error) {
	var o offer.Offer
	err := row.Scan(&o.ID, &o.Description, &o.Price, &o.Currency, &o.ExpirationDate, &o.Cancelled)
	return o, err
}
