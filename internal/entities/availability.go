package entities

// AvailabilityResponse is the body of POST /search-availability-json.
// OK is always present; the client treats a missing ok as a malformed answer.
type AvailabilityResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message,omitempty"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AvailableRoomsResponse lists the rooms free for a date range.
type AvailableRoomsResponse struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Rooms     []RoomResponse `json:"rooms"`
}
