package availability

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format the picker writes into the inputs (mm/dd/yyyy).
const DateLayout = "01/02/2006"

var (
	ErrDateBeforeMin = errors.New("date is before the earliest selectable date")
	ErrRangeReversed = errors.New("check-out date is before check-in date")
	ErrEmptyStay     = errors.New("check-out date must be after check-in date")
	ErrInvalidDate   = errors.New("invalid date")
)

// PickerOptions configures the date-range picker widget.
type PickerOptions struct {
	ShowOnFocus bool
	MinDate     time.Time
}

// Picker governs what may be entered into the date inputs.
type Picker interface {
	Attach(opts PickerOptions) error
	Validate(checkIn, checkOut string) error
}

// RangePicker is a date-range picker over two text inputs.
type RangePicker struct {
	Layout   string
	opts     PickerOptions
	attached bool
}

func NewRangePicker() *RangePicker {
	return &RangePicker{Layout: DateLayout}
}

func (p *RangePicker) Attach(opts PickerOptions) error {
	if p.attached {
		return ErrPickerAttached
	}
	p.opts = opts
	p.attached = true
	return nil
}

func (p *RangePicker) Options() PickerOptions {
	return p.opts
}

// Validate checks both values against the minimum date and each other.
// Empty values are accepted; required-ness belongs to the dialog.
func (p *RangePicker) Validate(checkIn, checkOut string) error {
	if !p.attached {
		return ErrPickerNotAttached
	}

	var in, out time.Time
	var err error
	if checkIn != "" {
		if in, err = p.parse(checkIn); err != nil {
			return err
		}
	}
	if checkOut != "" {
		if out, err = p.parse(checkOut); err != nil {
			return err
		}
	}
	if checkIn != "" && checkOut != "" {
		switch {
		case out.Before(in):
			return ErrRangeReversed
		case out.Equal(in):
			return ErrEmptyStay
		}
	}
	return nil
}

func (p *RangePicker) parse(value string) (time.Time, error) {
	t, err := time.Parse(p.Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q, expected %s", ErrInvalidDate, value, p.Layout)
	}
	if !p.opts.MinDate.IsZero() && t.Before(truncateDay(p.opts.MinDate)) {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrDateBeforeMin)
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
