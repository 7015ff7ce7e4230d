package availability

import (
	"errors"
	"fmt"
)

const (
	FormID        = "check-availability-form"
	FieldCheckIn  = "check_in_date"
	FieldCheckOut = "check_out_date"
)

var (
	ErrFieldDisabled      = errors.New("field is disabled")
	ErrPickerNotAttached  = errors.New("date picker is not attached")
	ErrPickerAttached     = errors.New("date picker is already attached")
	ErrAlreadyEnabled     = errors.New("date fields are already enabled")
	ErrUnknownField       = errors.New("unknown form field")
	ErrIncompleteDateForm = errors.New("both dates are required")
)

// Field is a single text input of the date form.
type Field struct {
	Name        string
	Placeholder string
	Value       string
	Disabled    bool
	Required    bool
}

// DateForm is the check-in/check-out form rendered inside the dialog.
// Both inputs start disabled and are enabled once, after a picker is attached.
type DateForm struct {
	ID       string
	checkIn  Field
	checkOut Field
	picker   Picker
	enables  int
}

func NewDateForm() *DateForm {
	return &DateForm{
		ID: FormID,
		checkIn: Field{
			Name:        FieldCheckIn,
			Placeholder: "Checkin",
			Disabled:    true,
			Required:    true,
		},
		checkOut: Field{
			Name:        FieldCheckOut,
			Placeholder: "Checkout",
			Disabled:    true,
			Required:    true,
		},
	}
}

// AttachPicker binds the date-range picker to the form region.
func (f *DateForm) AttachPicker(p Picker, opts PickerOptions) error {
	if f.picker != nil {
		return ErrPickerAttached
	}
	if err := p.Attach(opts); err != nil {
		return fmt.Errorf("attach picker: %w", err)
	}
	f.picker = p
	return nil
}

// Enable makes both inputs interactive. It only succeeds once and only after
// AttachPicker, so no value can be typed that the picker does not govern.
func (f *DateForm) Enable() error {
	if f.picker == nil {
		return ErrPickerNotAttached
	}
	if f.enables > 0 {
		return ErrAlreadyEnabled
	}
	f.checkIn.Disabled = false
	f.checkOut.Disabled = false
	f.enables++
	return nil
}

func (f *DateForm) PickerAttached() bool {
	return f.picker != nil
}

// EnableCount reports how many times the inputs were enabled.
func (f *DateForm) EnableCount() int {
	return f.enables
}

// Set writes a value into one of the inputs, passing it through the picker.
func (f *DateForm) Set(name, value string) error {
	field, err := f.field(name)
	if err != nil {
		return err
	}
	if field.Disabled {
		return fmt.Errorf("%s: %w", name, ErrFieldDisabled)
	}

	checkIn, checkOut := f.checkIn.Value, f.checkOut.Value
	if name == FieldCheckIn {
		checkIn = value
	} else {
		checkOut = value
	}
	if err := f.picker.Validate(checkIn, checkOut); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	field.Value = value
	return nil
}

// Values returns the current check-in and check-out strings.
func (f *DateForm) Values() (string, string) {
	return f.checkIn.Value, f.checkOut.Value
}

// Fields returns a copy of both inputs in render order.
func (f *DateForm) Fields() []Field {
	return []Field{f.checkIn, f.checkOut}
}

func (f *DateForm) field(name string) (*Field, error) {
	switch name {
	case FieldCheckIn:
		return &f.checkIn, nil
	case FieldCheckOut:
		return &f.checkOut, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
}
