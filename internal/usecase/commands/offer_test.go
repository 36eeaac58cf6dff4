//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"offers-service/internal/domain/offer"
	"offers-service/internal/pkg/clock"
	"offers-service/internal/pkg/errs"
	"offers-service/internal/usecase/commands"
	"offers-service/tests/common/builder"
	commandsmock "offers-service/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errStoreDown = errs.New("store unavailable")

func TestOfferCommands_Create(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name           string
		expirationDate time.Time
		wantExpired    bool
	}{
		{
			name:           "past expiration comes back already expired",
			expirationDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			wantExpired:    true,
		},
		{
			name:           "future expiration is not expired",
			expirationDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			wantExpired:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := commandsmock.NewMockOfferStore(ctrl)
			uc := commands.NewOfferCommands(store, clock.NewFixedClock(fixedNow))

			input := builder.NewOfferBuilder().WithExpirationDate(tc.expirationDate).BuildDomain()
			saved := input
			saved.ID = uuid.New()
			store.EXPECT().Save(ctx, input).Return(saved, nil)

			created, err := uc.Create(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, saved.ID, created.ID)
			assert.Equal(t, tc.wantExpired, created.Expired)
		})
	}

	t.Run("store failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := commandsmock.NewMockOfferStore(ctrl)
		uc := commands.NewOfferCommands(store, clock.NewFixedClock(fixedNow))

		store.EXPECT().Save(ctx, gomock.Any()).Return(offer.Offer{}, errStoreDown)

		_, err := uc.Create(ctx, builder.NewOfferBuilder().BuildDomain())
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestOfferCommands_Cancel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	fixedNow := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("active offer cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := commandsmock.NewMockOfferStore(ctrl)
		uc := commands.NewOfferCommands(store, clock.NewFixedClock(fixedNow))

		store.EXPECT().Cancel(ctx, id).Return(true, nil)

		assert.NoError(t, uc.Cancel(ctx, id))
	})

	t.Run("nonexistent or already-cancelled id maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := commandsmock.NewMockOfferStore(ctrl)
		uc := commands.NewOfferCommands(store, clock.NewFixedClock(fixedNow))

		store.EXPECT().Cancel(ctx, id).Return(false, nil)

		assert.ErrorIs(t, uc.Cancel(ctx, id), commands.ErrOfferNotFound)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := commandsmock.NewMockOfferStore(ctrl)
		uc := commands.NewOfferCommands(store, clock.NewFixedClock(fixedNow))

		store.EXPECT().Cancel(ctx, id).Return(false, errStoreDown)

		assert.ErrorIs(t, uc.Cancel(ctx, id), errStoreDown)
	})
}
