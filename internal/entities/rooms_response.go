package entities

type RoomResponse struct {
	ID       int    `json:"id"`
	RoomName string `json:"room_name"`
}

type RoomRestrictionResponse struct {
	ID            int    `json:"id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	ReservationID int    `json:"reservation_id,omitempty"`
	RestrictionID int    `json:"restriction_id"`
}
