package availability

import (
	"net/url"
	"strings"
)

const (
	FieldCSRFToken = "csrf_token"
	FieldRoomID    = "room_id"
)

// FormField is one key/value pair of the outbound request body.
type FormField struct {
	Key   string
	Value string
}

// Payload is an ordered list of form fields. Unlike url.Values it keeps
// insertion order when encoded.
type Payload []FormField

// Selection is the confirmed check-in/check-out pair.
type Selection struct {
	CheckIn  string
	CheckOut string
}

// ConfirmDates converts the dialog's PreConfirm result into a Selection.
func ConfirmDates(values []string) (Selection, error) {
	if len(values) != 2 || values[0] == "" || values[1] == "" {
		return Selection{}, ErrIncompleteDateForm
	}
	return Selection{CheckIn: values[0], CheckOut: values[1]}, nil
}

// BuildPayload assembles the availability request: the form's date fields
// followed by the anti-forgery token and the room id.
func BuildPayload(sel Selection, csrfToken, roomID string) Payload {
	return Payload{
		{Key: FieldCheckIn, Value: sel.CheckIn},
		{Key: FieldCheckOut, Value: sel.CheckOut},
		{Key: FieldCSRFToken, Value: csrfToken},
		{Key: FieldRoomID, Value: roomID},
	}
}

// Get returns the first value for key.
func (p Payload) Get(key string) string {
	for _, f := range p {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func (p Payload) Values() url.Values {
	v := make(url.Values, len(p))
	for _, f := range p {
		v.Add(f.Key, f.Value)
	}
	return v
}

// Encode renders the payload as application/x-www-form-urlencoded.
func (p Payload) Encode() string {
	var b strings.Builder
	for i, f := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}
