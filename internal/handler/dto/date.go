package dto

import (
	"strconv"
	"time"
)

// DateLayout is the fixed textual date format at the HTTP boundary
// (dd-MM-yyyy), used for expiration dates in bodies and query params alike.
const DateLayout = "02-01-2006"

// Date is a date-granularity instant that marshals as DateLayout.
type Date time.Time

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).Format(DateLayout))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}
