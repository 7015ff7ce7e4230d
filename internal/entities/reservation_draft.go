package entities

// ReservationDraft is the room and dates picked so far, kept in the session
// until the guest posts their details.
type ReservationDraft struct {
	RoomID    int    `json:"room_id,omitempty"`
	RoomName  string `json:"room_name,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
