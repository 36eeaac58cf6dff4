package queries

import (
	"context"

	"offers-service/internal/domain/offer"
	"offers-service/internal/infra"
	"offers-service/internal/pkg/clock"
	"offers-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOfferNotFound = errs.New("offer not found")

// OfferReadStore is the read-side port backed by the repository.
type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	Search(ctx context.Context, s offer.Search) ([]offer.Offer, error)
}

type OfferQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	Search(ctx context.Context, s offer.Search) ([]offer.Offer, error)
}

type offerQueriesImpl struct {
	store OfferReadStore
	clock clock.Clock
}

func NewOfferQueries(store OfferReadStore, clk clock.Clock) OfferQueries {
	return &offerQueriesImpl{store: store, clock: clk}
}

func (q *offerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	o, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return offer.Offer{}, ErrOfferNotFound
		}
		return offer.Offer{}, err
	}
	if o.IsExpired(q.clock.Now()) {
		o = offer.AsExpired(o)
	}
	return o, nil
}

// Search annotates every result against a single clock reading so a
// multi-offer response is internally consistent as of one instant.
func (q *offerQueriesImpl) Search(ctx context.Context, s offer.Search) ([]offer.Offer, error) {
	found, err := q.store.Search(ctx, s)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	for i, o := range found {
		if o.IsExpired(now) {
			found[i] = offer.AsExpired(o)
		}
	}
	return found, nil
}
