package entities

import "time"

type ReservationResponse struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CheckIn   string    `json:"check_in_date"`
	CheckOut  string    `json:"check_out_date"`
	RoomID    int       `json:"room_id"`
	RoomName  string    `json:"room_name"`
	Processed bool      `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationsList struct {
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}
