package request

import (
	"offers-service/internal/domain/offer"
	"offers-service/internal/handler/dto"
)

type CreateOfferRequest struct {
	Description    string   `json:"description"`
	Price          *float64 `json:"price"`
	Currency       *string  `json:"currency"`
	ExpirationDate dto.Date `json:"expirationDate" binding:"required"`
}

func (r CreateOfferRequest) ToDomain() offer.Offer {
	return offer.Offer{
		Description:    r.Description,
		Price:          r.Price,
		Currency:       r.Currency,
		ExpirationDate: r.ExpirationDate.Time(),
	}
}
