//go:build e2e

package offer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"offers-service/internal/domain/offer"
	"offers-service/internal/handler/dto"
	"offers-service/internal/handler/dto/response"
	"offers-service/tests/common/builder"
	"offers-service/tests/common/dbtest"
	"offers-service/tests/common/httptest"
	"offers-service/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	offersURL    = "/offers"
	offerByIDFmt = "/offers/%s"
)

type OfferSuite struct {
	e2e.SharedSuite
}

func (s *OfferSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOfferSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OfferSuite))
}

func (s *OfferSuite) createOffer(b *builder.OfferBuilder) response.OfferResponse {
	s.T().Helper()

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, offersURL, b.BuildCreateRequestDTO())
	require.Equal(s.T(), http.StatusCreated, w.Code, "Should create offer successfully: %s", w.Body.String())

	var created response.OfferResponse
	_ = httptest.DecodeResponseBody(s.T(), w.Body, &created)
	require.NotEqual(s.T(), uuid.Nil, created.ID, "Offer ID should be assigned")
	return created
}

func (s *OfferSuite) searchOffers(query string) []response.OfferResponse {
	s.T().Helper()

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, offersURL+query, nil)
	require.Equal(s.T(), http.StatusOK, w.Code, "Search should succeed: %s", w.Body.String())

	var found []response.OfferResponse
	_ = httptest.DecodeResponseBody(s.T(), w.Body, &found)
	return found
}

// =============================================================================
// TestCreateAndGet - Offer creation and retrieval API tests
// =============================================================================

func (s *OfferSuite) TestCreateAndGet() {
	s.Run("Normal case: created offer round-trips through GET", func() {
		t := s.T()

		created := s.createOffer(builder.NewOfferBuilder().
			WithDescription("Spring discount").
			WithPrice(25.50).
			WithCurrency("EUR").
			WithExpirationDate(time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(offerByIDFmt, created.ID), nil)

		var fetched response.OfferResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)

		if diff := cmp.Diff(created, fetched,
			cmpopts.EquateComparable(uuid.UUID{}, dto.Date{})); diff != "" {
			t.Errorf("fetched offer differs from created response (-created +fetched):\n%s", diff)
		}
		require.False(t, fetched.Expired, "A 2030 expiration date must not read as expired")
	})

	s.Run("Normal case: past expiration date is accepted and reads as expired", func() {
		t := s.T()

		created := s.createOffer(builder.NewOfferBuilder().
			WithDescription("Winter sale").
			WithPrice(19.99).
			WithCurrency("USD").
			WithExpirationDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
		require.True(t, created.Expired, "Creation response should already carry expired=true")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(offerByIDFmt, created.ID), nil)

		var fetched response.OfferResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		require.True(t, fetched.Expired)
		require.Equal(t, "Winter sale", fetched.Description)

		// The expired flag is derived on read; the row itself only carries the date.
		var storedDate time.Time
		var storedCancelled bool
		err := s.DB.QueryRow(context.Background(),
			"SELECT expiration_date, cancelled FROM offers WHERE id = $1", created.ID).
			Scan(&storedDate, &storedCancelled)
		require.NoError(t, err)
		require.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), storedDate.UTC())
		require.False(t, storedCancelled)
	})

	s.Run("Normal case: price and currency are optional", func() {
		t := s.T()

		reqBody := map[string]any{
			"description":    "Bare offer",
			"expirationDate": "31-12-2030",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, offersURL, reqBody)

		var created response.OfferResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Nil(t, created.Price)
		require.Nil(t, created.Currency)
	})

	s.Run("Error case: unknown offer returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(offerByIDFmt, uuid.New()), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")
	})
}

// =============================================================================
// TestCancel - Offer cancellation API tests
// =============================================================================

func (s *OfferSuite) TestCancel() {
	s.Run("Normal case: cancelled offer disappears from every read", func() {
		t := s.T()

		created := s.createOffer(builder.NewOfferBuilder().
			WithExpirationDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
		url := fmt.Sprintf(offerByIDFmt, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")

		require.Empty(t, s.searchOffers(""), "Unfiltered search must not show cancelled offers")

		// The row survives; only the flag flips.
		var cancelled bool
		err := s.DB.QueryRow(context.Background(),
			"SELECT cancelled FROM offers WHERE id = $1", created.ID).Scan(&cancelled)
		require.NoError(t, err)
		require.True(t, cancelled)
	})

	s.Run("Normal case: repeated cancel returns 404", func() {
		t := s.T()

		created := s.createOffer(builder.NewOfferBuilder().
			WithExpirationDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
		url := fmt.Sprintf(offerByIDFmt, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")
	})

	s.Run("Error case: cancelling an unknown offer returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(offerByIDFmt, uuid.New()), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")
	})
}

// =============================================================================
// TestSearch - Offer search API tests
// =============================================================================

func (s *OfferSuite) TestSearch() {
	seed := func() (cheap, mid, dear response.OfferResponse) {
		cheap = s.createOffer(builder.NewOfferBuilder().
			WithDescription("Budget breakfast").
			WithPrice(5.00).
			WithCurrency("USD").
			WithExpirationDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
		mid = s.createOffer(builder.NewOfferBuilder().
			WithDescription("Lunch special").
			WithPrice(15.00).
			WithCurrency("EUR").
			WithExpirationDate(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
		dear = s.createOffer(builder.NewOfferBuilder().
			WithDescription("Grand dinner").
			WithPrice(45.00).
			WithCurrency("USD").
			WithExpirationDate(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)))
		return cheap, mid, dear
	}

	ids := func(offers []response.OfferResponse) []uuid.UUID {
		out := make([]uuid.UUID, len(offers))
		for i, o := range offers {
			out[i] = o.ID
		}
		return out
	}

	s.Run("Normal case: empty search returns every active offer", func() {
		cheap, mid, dear := seed()

		found := s.searchOffers("")
		require.ElementsMatch(s.T(), []uuid.UUID{cheap.ID, mid.ID, dear.ID}, ids(found))
	})

	s.Run("Normal case: description matches on substring, case-insensitive", func() {
		_, mid, _ := seed()

		found := s.searchOffers("?description=lunch")
		require.Equal(s.T(), []uuid.UUID{mid.ID}, ids(found))
	})

	s.Run("Normal case: currency is an exact match", func() {
		cheap, _, dear := seed()

		found := s.searchOffers("?currency=USD")
		require.ElementsMatch(s.T(), []uuid.UUID{cheap.ID, dear.ID}, ids(found))
	})

	s.Run("Normal case: price range bounds are inclusive", func() {
		cheap, mid, _ := seed()

		found := s.searchOffers("?priceStart=5&priceEnd=15")
		require.ElementsMatch(s.T(), []uuid.UUID{cheap.ID, mid.ID}, ids(found))
	})

	s.Run("Normal case: a lone bound leaves the other side open", func() {
		_, mid, dear := seed()

		found := s.searchOffers("?priceStart=15")
		require.ElementsMatch(s.T(), []uuid.UUID{mid.ID, dear.ID}, ids(found))
	})

	s.Run("Normal case: inverted price range matches nothing", func() {
		seed()

		found := s.searchOffers("?priceStart=40&priceEnd=10")
		require.Empty(s.T(), found)
	})

	s.Run("Normal case: expiration date range filters by date", func() {
		_, mid, _ := seed()

		found := s.searchOffers("?expirationDateStart=01-02-2030&expirationDateEnd=01-12-2030")
		require.Equal(s.T(), []uuid.UUID{mid.ID}, ids(found))
	})

	s.Run("Normal case: filters conjoin", func() {
		cheap, _, _ := seed()

		found := s.searchOffers("?currency=USD&priceEnd=20&description=budget")
		require.Equal(s.T(), []uuid.UUID{cheap.ID}, ids(found))
	})

	s.Run("Normal case: cancelled rows stay invisible even when filters match them", func() {
		t := s.T()

		cancelledID := dbtest.CreateTestOffer(t, s.DB, offer.Offer{
			Description:    "Ghost offer",
			ExpirationDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		}, true)

		found := s.searchOffers("?description=ghost")
		require.Empty(t, found)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(offerByIDFmt, cancelledID), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")
	})

	s.Run("Normal case: expired offers still appear in results, flagged", func() {
		t := s.T()

		stale := s.createOffer(builder.NewOfferBuilder().
			WithDescription("Last year's deal").
			WithExpirationDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))

		found := s.searchOffers("?description=deal")
		require.Len(t, found, 1)
		require.Equal(t, stale.ID, found[0].ID)
		require.True(t, found[0].Expired)
	})

	s.Run("Error case: malformed filters return 400", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL+"?priceStart=abc", nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid search parameter")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL+"?expirationDateEnd=2030/01/01", nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid search parameter")
	})
}
