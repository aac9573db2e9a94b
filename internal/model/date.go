package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the canonical textual form of a calendar date.
const DateLayout = "2006-01-02"

// NullDate is a calendar date (no time of day) that may be absent.
// Valid dates are always stored at midnight UTC so that == and Equal agree.
type NullDate struct {
	Time  time.Time
	Valid bool
}

// DateOf keeps the calendar date of t as seen in t's own location.
func DateOf(t time.Time) NullDate {
	return NullDate{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

// NewDate builds a valid NullDate from its parts.
func NewDate(year int, month time.Month, day int) NullDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Equal reports whether both are null or both hold the same date.
func (d NullDate) Equal(o NullDate) bool {
	if d.Valid != o.Valid {
		return false
	}
	return !d.Valid || d.Time.Equal(o.Time)
}

// Before reports d < o. Null dates are never before anything.
func (d NullDate) Before(o NullDate) bool {
	return d.Valid && o.Valid && d.Time.Before(o.Time)
}

// After reports d > o. Null dates are never after anything.
func (d NullDate) After(o NullDate) bool {
	return d.Valid && o.Valid && d.Time.After(o.Time)
}

// AddDays returns d shifted by n days; null stays null.
func (d NullDate) AddDays(n int) NullDate {
	if !d.Valid {
		return d
	}
	return NullDate{Time: d.Time.AddDate(0, 0, n), Valid: true}
}

func (d NullDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *NullDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = NullDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = NullDate{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// DateRange is an inclusive interval of calendar dates.
type DateRange struct {
	From NullDate `json:"from"`
	To   NullDate `json:"to"`
}

// Contains reports From <= d <= To. A null d is never contained.
func (r DateRange) Contains(d NullDate) bool {
	if !d.Valid || !r.From.Valid || !r.To.Valid {
		return false
	}
	return !d.Before(r.From) && !d.After(r.To)
}
