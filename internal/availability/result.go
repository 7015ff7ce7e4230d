package availability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrMissingOK     = errors.New("response has no ok field")
	ErrInvalidOKType = errors.New("response ok field is not a boolean")
	ErrMissingField  = errors.New("available response is missing a field")
)

// Result is the decoded answer of the availability endpoint. It is one of
// Available, Unavailable, Malformed or RequestFailed.
type Result interface {
	isResult()
}

type Available struct {
	RoomID    string
	StartDate string
	EndDate   string
}

type Unavailable struct {
	Message string
}

// Malformed means the server answered but the body could not be interpreted.
type Malformed struct {
	Err error
}

// RequestFailed means no usable response arrived at all.
type RequestFailed struct {
	Err error
}

func (Available) isResult()     {}
func (Unavailable) isResult()   {}
func (Malformed) isResult()     {}
func (RequestFailed) isResult() {}

type wireResult struct {
	OK        json.RawMessage `json:"ok"`
	Message   string          `json:"message"`
	RoomID    json.RawMessage `json:"room_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// DecodeResult parses a response body. It never fails: anything that is not
// a well-formed availability answer becomes Malformed.
func DecodeResult(body []byte) Result {
	var w wireResult
	if err := json.Unmarshal(body, &w); err != nil {
		return Malformed{Err: fmt.Errorf("decode availability response: %w", err)}
	}
	if len(w.OK) == 0 || bytes.Equal(w.OK, []byte("null")) {
		return Malformed{Err: ErrMissingOK}
	}

	var ok bool
	if err := json.Unmarshal(w.OK, &ok); err != nil {
		return Malformed{Err: ErrInvalidOKType}
	}
	if !ok {
		return Unavailable{Message: w.Message}
	}

	roomID, err := tokenString(w.RoomID)
	if err != nil {
		return Malformed{Err: fmt.Errorf("room_id: %w", err)}
	}
	switch {
	case roomID == "":
		return Malformed{Err: fmt.Errorf("%w: room_id", ErrMissingField)}
	case w.StartDate == "":
		return Malformed{Err: fmt.Errorf("%w: start_date", ErrMissingField)}
	case w.EndDate == "":
		return Malformed{Err: fmt.Errorf("%w: end_date", ErrMissingField)}
	}
	return Available{
		RoomID:    roomID,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
	}
}

// tokenString accepts a JSON string or number and returns its text.
func tokenString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return n.String(), nil
}

// BookingLink builds the deep link into the reservation page from the
// server's answer, not from what was requested.
func BookingLink(a Available) string {
	return "/book-room?id=" + url.QueryEscape(a.RoomID) +
		"&start=" + url.QueryEscape(a.StartDate) +
		"&end=" + url.QueryEscape(a.EndDate)
}
