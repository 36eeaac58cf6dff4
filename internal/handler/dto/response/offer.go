package response

import (
	"offers-service/internal/domain/offer"
	"offers-service/internal/handler/dto"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// OfferResponse mirrors the persisted shape minus cancelled (a cancelled offer
// never reaches a response) plus the derived expired flag.
type OfferResponse struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Price          *float64  `json:"price,omitempty"`
	Currency       *string   `json:"currency,omitempty"`
	ExpirationDate dto.Date  `json:"expirationDate"`
	Expired        bool      `json:"expired,omitempty"`
}

func FromOffer(o offer.Offer) OfferResponse {
	var resp OfferResponse
	_ = copier.Copy(&resp, &o)
	resp.ExpirationDate = dto.Date(o.ExpirationDate)
	return resp
}

func FromOffers(offers []offer.Offer) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i, o := range offers {
		out[i] = FromOffer(o)
	}
	return out
}
