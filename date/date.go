// Package date implements a calendar day with no time of day, as used for
// trade buy and sell dates.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 layout dates are written with.
const DateFormat = "2006-01-02"

// readFormat also accepts single digit months and days.
const readFormat = "2006-1-2"

// Date is a day. The zero Date is no day at all.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the Date of year, month and day, normalized like time.Date.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Today is the current local day.
func Today() Date { return New(time.Now().Date()) }

// time is midnight UTC of d, two equal dates give equal times.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Add returns the date days later, or earlier when days is negative.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// String formats d as YYYY-MM-DD, the zero Date as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Parse reads a YYYY-MM-DD date, "2025-7-1" is accepted too.
func Parse(s string) (Date, error) {
	t, err := time.Parse(readFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want YYYY-MM-DD: %w", s, err)
	}
	return New(t.Date()), nil
}

// MustParse is Parse for literals, it panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// UnmarshalJSON reads a date string. "" and null are the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(*s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON writes the date string, null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}
