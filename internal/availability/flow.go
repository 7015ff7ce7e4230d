// Package availability implements the room availability request flow: pick
// dates in a dialog, ask the server whether the room is free, and show the
// outcome with a link into the booking page.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	DialogOpen
	DatesPicked
	Submitting
	SuccessShown
	ErrorShown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DialogOpen:
		return "dialog_open"
	case DatesPicked:
		return "dates_picked"
	case Submitting:
		return "submitting"
	case SuccessShown:
		return "success_shown"
	case ErrorShown:
		return "error_shown"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is what one run of the flow went through.
type Outcome struct {
	State       State
	Transitions []State
	Selection   Selection
	Payload     Payload
	Result      Result
	Notice      Notice

	dismissed bool
}

// Dismissed reports whether the user closed the date dialog without confirming.
func (o Outcome) Dismissed() bool {
	return o.dismissed
}

// Flow wires the dialog, picker and transport together. The CSRF token is
// provided by whoever rendered the page; the flow never creates one.
type Flow struct {
	Modal     Modal
	Searcher  Searcher
	CSRFToken string
	NewPicker func() Picker
	Now       func() time.Time
	Log       *zap.Logger
}

func NewFlow(modal Modal, searcher Searcher, csrfToken string, log *zap.Logger) *Flow {
	return &Flow{
		Modal:     modal,
		Searcher:  searcher,
		CSRFToken: csrfToken,
		NewPicker: func() Picker { return NewRangePicker() },
		Now:       time.Now,
		Log:       log,
	}
}

// Run executes the flow for one room. A dismissed dialog is not an error.
// Transport and decoding failures end in ErrorShown; only a failing Modal
// makes Run return an error. If the result dialog cannot be shown the
// outcome stays in Submitting.
func (f *Flow) Run(ctx context.Context, roomID string) (Outcome, error) {
	out := Outcome{State: Idle, Transitions: []State{Idle}}
	if f.Modal == nil || f.Searcher == nil {
		return out, errNotWired
	}
	log := f.logger().With(zap.String("room_id", roomID))

	form := NewDateForm()
	picker := f.picker()
	opts := MultiInputOptions{
		Title: DialogTitle,
		Form:  form,
		WillOpen: func() error {
			return form.AttachPicker(picker, PickerOptions{
				ShowOnFocus: true,
				MinDate:     f.now(),
			})
		},
		DidOpen: form.Enable,
		PreConfirm: func() ([]string, error) {
			checkIn, checkOut := form.Values()
			return []string{checkIn, checkOut}, nil
		},
	}

	f.transition(log, &out, DialogOpen)
	values, confirmed, err := f.Modal.MultiInput(ctx, opts)
	if err != nil {
		f.transition(log, &out, Idle)
		return out, fmt.Errorf("date dialog: %w", err)
	}
	if !confirmed {
		out.dismissed = true
		f.transition(log, &out, Idle)
		return out, nil
	}

	sel, err := ConfirmDates(values)
	if err != nil {
		f.transition(log, &out, Idle)
		return out, err
	}
	out.Selection = sel
	f.transition(log, &out, DatesPicked)

	out.Payload = BuildPayload(sel, f.CSRFToken, roomID)
	f.transition(log, &out, Submitting)

	body, err := f.Searcher.SearchAvailability(ctx, out.Payload)
	if err != nil {
		log.Warn("availability request failed", zap.Error(err))
		out.Result = RequestFailed{Err: err}
	} else {
		out.Result = DecodeResult(body)
		if m, ok := out.Result.(Malformed); ok {
			log.Warn("malformed availability response", zap.Error(m.Err))
		}
	}

	out.Notice = NoticeFor(out.Result)
	shown := ErrorShown
	show := f.Modal.Error
	if _, ok := out.Result.(Available); ok {
		shown, show = SuccessShown, f.Modal.Success
	}
	if err := show(ctx, out.Notice); err != nil {
		return out, fmt.Errorf("result dialog: %w", err)
	}
	f.transition(log, &out, shown)
	return out, nil
}

// Err returns the underlying failure of a Malformed or RequestFailed result.
func (o Outcome) Err() error {
	switch r := o.Result.(type) {
	case Malformed:
		return r.Err
	case RequestFailed:
		return r.Err
	default:
		return nil
	}
}

var errNotWired = errors.New("availability flow needs a modal and a searcher")

func (f *Flow) transition(log *zap.Logger, out *Outcome, to State) {
	log.Debug("availability flow transition",
		zap.Stringer("from", out.State),
		zap.Stringer("to", to),
	)
	out.State = to
	out.Transitions = append(out.Transitions, to)
}

func (f *Flow) picker() Picker {
	if f.NewPicker == nil {
		return NewRangePicker()
	}
	return f.NewPicker()
}

func (f *Flow) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func (f *Flow) logger() *zap.Logger {
	if f.Log == nil {
		return zap.NewNop()
	}
	return f.Log
}
