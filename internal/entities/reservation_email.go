package entities

type ReservationEmailData struct {
	GuestName     string
	ReservationID int
	RoomName      string
	CheckIn       string
	CheckOut      string
	CurrentYear   int
	Reminder      bool
}
