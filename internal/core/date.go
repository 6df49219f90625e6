package core

import (
	"errors"
	"time"
)

// DateLayout is the wire format used by every tabular collaborator.
const DateLayout = "01/02/06"

// Date is a calendar date, normalized to midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate reads a date in the MM/DD/YY wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.New("invalid date " + s + ": want MM/DD/YY")
	}
	return DateOf(t), nil
}

// Format renders the date in the MM/DD/YY wire format.
func (d Date) Format() string {
	return d.Time.Format(DateLayout)
}

// Before reports whether d falls before o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d falls after o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Validate rejects the zero date.
func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// DaysInMonth returns the length of the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
