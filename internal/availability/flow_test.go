package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var today = time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)

type fakeModal struct {
	dates []string // nil dismisses the dialog

	disabledBeforeOpen  bool
	disabledAfterAttach bool
	enabledAfterDidOpen bool
	setBeforeEnableErr  error
	enableAgainErr      error
	pickerOpts          PickerOptions
	title               string

	successes []Notice
	failures  []Notice
	showErr   error
}

func (m *fakeModal) MultiInput(ctx context.Context, opts MultiInputOptions) ([]string, bool, error) {
	m.title = opts.Title
	m.disabledBeforeOpen = allDisabled(opts.Form)
	m.setBeforeEnableErr = opts.Form.Set(FieldCheckIn, "01/02/2024")

	if err := opts.WillOpen(); err != nil {
		return nil, false, err
	}
	m.disabledAfterAttach = allDisabled(opts.Form)

	if err := opts.DidOpen(); err != nil {
		return nil, false, err
	}
	m.enabledAfterDidOpen = !allDisabled(opts.Form)
	m.enableAgainErr = opts.Form.Enable()

	if m.dates == nil {
		return nil, false, nil
	}
	if err := opts.Form.Set(FieldCheckIn, m.dates[0]); err != nil {
		return nil, false, err
	}
	if err := opts.Form.Set(FieldCheckOut, m.dates[1]); err != nil {
		return nil, false, err
	}
	values, err := opts.PreConfirm()
	return values, true, err
}

func (m *fakeModal) Success(ctx context.Context, n Notice) error {
	if m.showErr != nil {
		return m.showErr
	}
	m.successes = append(m.successes, n)
	return nil
}

func (m *fakeModal) Error(ctx context.Context, n Notice) error {
	if m.showErr != nil {
		return m.showErr
	}
	m.failures = append(m.failures, n)
	return nil
}

func allDisabled(f *DateForm) bool {
	for _, field := range f.Fields() {
		if !field.Disabled {
			return false
		}
	}
	return true
}

type fakeSearcher struct {
	body  []byte
	err   error
	calls []Payload
}

func (s *fakeSearcher) SearchAvailability(ctx context.Context, p Payload) ([]byte, error) {
	s.calls = append(s.calls, p)
	return s.body, s.err
}

func newTestFlow(t *testing.T, modal Modal, searcher Searcher) *Flow {
	t.Helper()
	f := NewFlow(modal, searcher, "page-token", zaptest.NewLogger(t))
	f.Now = func() time.Time { return today }
	return f
}

func TestFlow_FieldsEnabledOnlyAfterPickerAttached(t *testing.T) {
	for _, roomID := range []string{"1", "12", "room-abc"} {
		modal := &fakeModal{}
		flow := newTestFlow(t, modal, &fakeSearcher{})

		_, err := flow.Run(context.Background(), roomID)
		require.NoError(t, err)

		assert.Equal(t, DialogTitle, modal.title)
		assert.True(t, modal.disabledBeforeOpen, "fields must start disabled")
		assert.ErrorIs(t, modal.setBeforeEnableErr, ErrFieldDisabled)
		assert.True(t, modal.disabledAfterAttach, "attaching the picker must not enable fields")
		assert.True(t, modal.enabledAfterDidOpen)
		assert.ErrorIs(t, modal.enableAgainErr, ErrAlreadyEnabled)
	}
}

func TestFlow_PickerConfiguredWithToday(t *testing.T) {
	var picker *RangePicker
	modal := &fakeModal{}
	flow := newTestFlow(t, modal, &fakeSearcher{})
	flow.NewPicker = func() Picker {
		picker = NewRangePicker()
		return picker
	}

	_, err := flow.Run(context.Background(), "1")
	require.NoError(t, err)

	require.NotNil(t, picker)
	assert.True(t, picker.Options().ShowOnFocus)
	assert.Equal(t, today, picker.Options().MinDate)
}

func TestFlow_Available(t *testing.T) {
	modal := &fakeModal{dates: []string{"01/01/2024", "01/03/2024"}}
	searcher := &fakeSearcher{body: []byte(`{"ok":true,"room_id":"12","start_date":"2024-01-01","end_date":"2024-01-03"}`)}
	flow := newTestFlow(t, modal, searcher)

	out, err := flow.Run(context.Background(), "12")
	require.NoError(t, err)

	assert.Equal(t, SuccessShown, out.State)
	assert.Equal(t, []State{Idle, DialogOpen, DatesPicked, Submitting, SuccessShown}, out.Transitions)
	require.Len(t, modal.successes, 1)
	assert.Empty(t, modal.failures)

	n := modal.successes[0]
	assert.Equal(t, IconSuccess, n.Icon)
	assert.False(t, n.ShowConfirmButton)
	require.NotNil(t, n.Link)
	assert.Equal(t, "/book-room?id=12&start=2024-01-01&end=2024-01-03", n.Link.Href)
	assert.Equal(t, BookNowLabel, n.Link.Label)
}

func TestFlow_PayloadHasExactlyFourFields(t *testing.T) {
	modal := &fakeModal{dates: []string{"01/05/2024", "01/07/2024"}}
	searcher := &fakeSearcher{body: []byte(`{"ok":false}`)}
	flow := newTestFlow(t, modal, searcher)

	_, err := flow.Run(context.Background(), "7")
	require.NoError(t, err)

	require.Len(t, searcher.calls, 1)
	assert.Equal(t, Payload{
		{Key: "check_in_date", Value: "01/05/2024"},
		{Key: "check_out_date", Value: "01/07/2024"},
		{Key: "csrf_token", Value: "page-token"},
		{Key: "room_id", Value: "7"},
	}, searcher.calls[0])
}

func TestFlow_RoomIDRoundTrip(t *testing.T) {
	for _, roomID := range []string{"1", "42", "suite-7", "a b&c"} {
		modal := &fakeModal{dates: []string{"01/05/2024", "01/07/2024"}}
		searcher := &fakeSearcher{body: []byte(`{"ok":false}`)}
		flow := newTestFlow(t, modal, searcher)

		_, err := flow.Run(context.Background(), roomID)
		require.NoError(t, err)

		require.Len(t, searcher.calls, 1)
		assert.Equal(t, roomID, searcher.calls[0].Get(FieldRoomID))
		assert.Equal(t, roomID, searcher.calls[0].Values().Get(FieldRoomID))
	}
}

func TestFlow_Unavailable(t *testing.T) {
	modal := &fakeModal{dates: []string{"01/05/2024", "01/07/2024"}}
	flow := newTestFlow(t, modal, &fakeSearcher{body: []byte(`{"ok":false}`)})

	out, err := flow.Run(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, ErrorShown, out.State)
	assert.Empty(t, modal.successes)
	require.Len(t, modal.failures, 1)
	assert.Equal(t, "Not Available", modal.failures[0].Message)
	assert.Nil(t, modal.failures[0].Link)
}

func TestFlow_DismissSendsNothing(t *testing.T) {
	modal := &fakeModal{}
	searcher := &fakeSearcher{}
	flow := newTestFlow(t, modal, searcher)

	out, err := flow.Run(context.Background(), "3")
	require.NoError(t, err)

	assert.Empty(t, searcher.calls)
	assert.Equal(t, Idle, out.State)
	assert.True(t, out.Dismissed())
	assert.Empty(t, modal.successes)
	assert.Empty(t, modal.failures)
}

func TestFlow_TransportFailureShowsGenericError(t *testing.T) {
	modal := &fakeModal{dates: []string{"01/05/2024", "01/07/2024"}}
	boom := errors.New("connection refused")
	flow := newTestFlow(t, modal, &fakeSearcher{err: boom})

	out, err := flow.Run(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, ErrorShown, out.State)
	assert.IsType(t, RequestFailed{}, out.Result)
	assert.ErrorIs(t, out.Err(), boom)
	require.Len(t, modal.failures, 1)
	assert.Equal(t, GenericFailureMsg, modal.failures[0].Message)
}

func TestFlow_MalformedResponseShowsGenericError(t *testing.T) {
	for _, body := range []string{`<html>oops</html>`, `{}`, `{"ok":"yes"}`} {
		modal := &fakeModal{dates: []string{"01/05/2024", "01/07/2024"}}
		flow := newTestFlow(t, modal, &fakeSearcher{body: []byte(body)})

		out, err := flow.Run(context.Background(), "3")
		require.NoError(t, err)

		assert.IsType(t, Malformed{}, out.Result, body)
		require.Len(t, modal.failures, 1)
		assert.Equal(t, GenericFailureMsg, modal.failures[0].Message)
	}
}

func TestFlow_PastDateRejectedByPicker(t *testing.T) {
	modal := &fakeModal{dates: []string{"12/31/2023", "01/03/2024"}}
	searcher := &fakeSearcher{}
	flow := newTestFlow(t, modal, searcher)

	out, err := flow.Run(context.Background(), "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDateBeforeMin)
	assert.Empty(t, searcher.calls)
	assert.Equal(t, Idle, out.State)
	assert.False(t, out.Dismissed(), "a rejected date is not a dismissal")
}

func TestFlow_IncompleteDatesNotDismissed(t *testing.T) {
	modal := &fakeModal{dates: []string{"01/05/2024", ""}}
	searcher := &fakeSearcher{}
	flow := newTestFlow(t, modal, searcher)

	out, err := flow.Run(context.Background(), "3")
	assert.ErrorIs(t, err, ErrIncompleteDateForm)
	assert.False(t, out.Dismissed())
	assert.Empty(t, searcher.calls)
}

func TestFlow_ResultDialogFailureKeepsSubmitting(t *testing.T) {
	boom := errors.New("display gone")
	for _, body := range []string{
		`{"ok":true,"room_id":"3","start_date":"01/05/2024","end_date":"01/07/2024"}`,
		`{"ok":false}`,
	} {
		modal := &fakeModal{dates: []string{"01/05/2024", "01/07/2024"}, showErr: boom}
		flow := newTestFlow(t, modal, &fakeSearcher{body: []byte(body)})

		out, err := flow.Run(context.Background(), "3")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, Submitting, out.State, body)
		assert.Equal(t, []State{Idle, DialogOpen, DatesPicked, Submitting}, out.Transitions)
		assert.NotNil(t, out.Result)
	}
}

func TestFlow_NotWired(t *testing.T) {
	_, err := (&Flow{}).Run(context.Background(), "1")
	assert.Error(t, err)
}
