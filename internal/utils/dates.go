package utils

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is how dates travel in forms and query strings (mm/dd/yyyy).
const DateLayout = "01/02/2006"

var (
	ErrInvertedRange = errors.New("end date is before start date")
	ErrEmptyStay     = errors.New("end date must be after start date")
)

// ParseDate parses a form date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ParseStay parses the dates of a stay, which lasts at least one night.
func ParseStay(start, end string) (time.Time, time.Time, error) {
	s, e, err := ParseRange(start, end)
	if err != nil {
		return s, e, err
	}
	if e.Equal(s) {
		return time.Time{}, time.Time{}, ErrEmptyStay
	}
	return s, e, nil
}

// ParseRange parses an inclusive start/end pair; both may be the same day.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, ErrInvertedRange
	}
	return s, e, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
