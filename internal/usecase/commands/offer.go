package commands

import (
	"context"

	"offers-service/internal/domain/offer"
	"offers-service/internal/pkg/clock"
	"offers-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOfferNotFound = errs.New("offer not found")

// OfferStore is the write-side port the commands need from the repository.
type OfferStore interface {
	Save(ctx context.Context, o offer.Offer) (offer.Offer, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}

type OfferCommands interface {
	Create(ctx context.Context, o offer.Offer) (offer.Offer, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type offerCommandsImpl struct {
	store OfferStore
	clock clock.Clock
}

func NewOfferCommands(store OfferStore, clk clock.Clock) OfferCommands {
	return &offerCommandsImpl{store: store, clock: clk}
}

// Create saves the offer and annotates the returned copy with its expiration
// state. An offer created with a past expiration date is valid and comes back
// already marked expired.
func (uc *offerCommandsImpl) Create(ctx context.Context, o offer.Offer) (offer.Offer, error) {
	saved, err := uc.store.Save(ctx, o)
	if err != nil {
		return offer.Offer{}, err
	}
	if saved.IsExpired(uc.clock.Now()) {
		saved = offer.AsExpired(saved)
	}
	return saved, nil
}

// Cancel is pure delegation; there is no offer body to annotate. Cancelling a
// nonexistent or already-cancelled offer reports ErrOfferNotFound, so repeated
// cancels are safe.
func (uc *offerCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	cancelled, err := uc.store.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if !cancelled {
		return ErrOfferNotFound
	}
	return nil
}
