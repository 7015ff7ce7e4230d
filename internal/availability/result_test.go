package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Result
	}{
		{
			name: "available",
			body: `{"ok":true,"message":"","room_id":"12","start_date":"2024-01-01","end_date":"2024-01-03"}`,
			want: Available{RoomID: "12", StartDate: "2024-01-01", EndDate: "2024-01-03"},
		},
		{
			name: "numeric room id",
			body: `{"ok":true,"room_id":12,"start_date":"01/01/2024","end_date":"01/03/2024"}`,
			want: Available{RoomID: "12", StartDate: "01/01/2024", EndDate: "01/03/2024"},
		},
		{
			name: "unavailable",
			body: `{"ok":false}`,
			want: Unavailable{},
		},
		{
			name: "unavailable with message",
			body: `{"ok":false,"message":"Error querying database"}`,
			want: Unavailable{Message: "Error querying database"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeResult([]byte(tt.body)))
		})
	}
}

func TestDecodeResult_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "not json", body: `Internal Server Error`},
		{name: "missing ok", body: `{"room_id":"1"}`, err: ErrMissingOK},
		{name: "null ok", body: `{"ok":null}`, err: ErrMissingOK},
		{name: "string ok", body: `{"ok":"true"}`, err: ErrInvalidOKType},
		{name: "bad room id", body: `{"ok":true,"room_id":{"id":1}}`},
		{name: "ok without fields", body: `{"ok":true}`, err: ErrMissingField},
		{name: "ok without dates", body: `{"ok":true,"room_id":"1"}`, err: ErrMissingField},
		{name: "ok with empty end", body: `{"ok":true,"room_id":1,"start_date":"01/05/2024","end_date":""}`, err: ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DecodeResult([]byte(tt.body))
			m, ok := res.(Malformed)
			if assert.True(t, ok, "got %#v", res) && tt.err != nil {
				assert.ErrorIs(t, m.Err, tt.err)
			}
		})
	}
}

func TestBookingLink(t *testing.T) {
	assert.Equal(t,
		"/book-room?id=12&start=2024-01-01&end=2024-01-03",
		BookingLink(Available{RoomID: "12", StartDate: "2024-01-01", EndDate: "2024-01-03"}),
	)
	assert.Equal(t,
		"/book-room?id=1&start=01%2F05%2F2024&end=01%2F07%2F2024",
		BookingLink(Available{RoomID: "1", StartDate: "01/05/2024", EndDate: "01/07/2024"}),
	)
}

func TestNoticeFor(t *testing.T) {
	n := NoticeFor(Unavailable{Message: "ignored"})
	assert.Equal(t, NotAvailableMsg, n.Message)
	assert.Nil(t, n.Link)

	n = NoticeFor(RequestFailed{})
	assert.Equal(t, GenericFailureMsg, n.Message)
	assert.Nil(t, n.Link)
}
