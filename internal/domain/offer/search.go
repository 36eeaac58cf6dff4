package offer

import "time"

// Search is an immutable set of optional predicates for finding offers.
// A nil field places no constraint on that dimension. Range bounds are
// honored independently, so a lower bound without an upper bound means
// "unbounded above" rather than an error.
type Search struct {
	Description *string
	Currency    *string
	PriceStart  *float64
	PriceEnd    *float64
	DateStart   *time.Time
	DateEnd     *time.Time
}
