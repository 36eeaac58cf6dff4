package offer

import (
	"time"

	"github.com/google/uuid"
)

// Offer is the priced, time-bounded record managed by the service.
//
// Cancelled is persisted and one-way: once set it is never cleared.
// Expired is never persisted; it is derived against the current instant on
// every read leaving the store.
type Offer struct {
	ID             uuid.UUID
	Description    string
	Price          *float64
	Currency       *string
	ExpirationDate time.Time
	Cancelled      bool
	Expired        bool
}

// IsExpired reports whether the offer is past its expiration date as of now.
// The comparison is strict: an offer expiring exactly at now is not expired.
func (o Offer) IsExpired(now time.Time) bool {
	return now.After(o.ExpirationDate)
}

// AsExpired returns a copy of o with the expired flag set. The input is left
// untouched so the annotation never leaks back into stored state.
func AsExpired(o Offer) Offer {
	o.Expired = true
	return o
}
