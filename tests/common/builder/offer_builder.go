//go:build unit || e2e

package builder

import (
	"time"

	"offers-service/internal/domain/offer"
	"offers-service/internal/handler/dto"
	reqdto "offers-service/internal/handler/dto/request"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	ID             uuid.UUID
	Description    string
	Price          float64
	Currency       string
	ExpirationDate time.Time
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		ID:             uuid.Nil, // store assigns one on save
		Description:    "Winter sale",
		Price:          19.99,
		Currency:       "USD",
		ExpirationDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *OfferBuilder) WithID(id uuid.UUID) *OfferBuilder {
	b.ID = id
	return b
}

func (b *OfferBuilder) WithDescription(description string) *OfferBuilder {
	b.Description = description
	return b
}

func (b *OfferBuilder) WithPrice(price float64) *OfferBuilder {
	b.Price = price
	return b
}

func (b *OfferBuilder) WithCurrency(currency string) *OfferBuilder {
	b.Currency = currency
	return b
}

func (b *OfferBuilder) WithExpirationDate(t time.Time) *OfferBuilder {
	b.ExpirationDate = t
	return b
}

func (b *OfferBuilder) BuildDomain() offer.Offer {
	price := b.Price
	currency := b.Currency
	return offer.Offer{
		ID:             b.ID,
		Description:    b.Description,
		Price:          &price,
		Currency:       &currency,
		ExpirationDate: b.ExpirationDate,
	}
}

func (b *OfferBuilder) BuildCreateRequestDTO() reqdto.CreateOfferRequest {
	price := b.Price
	currency := b.Currency
	return reqdto.CreateOfferRequest{
		Description:    b.Description,
		Price:          &price,
		Currency:       &currency,
		ExpirationDate: dto.Date(b.ExpirationDate),
	}
}
