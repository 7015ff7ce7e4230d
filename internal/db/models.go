package db

import "time"

const (
	RestrictionReservation = 1
	RestrictionOwnerBlock  = 2
)

type Room struct {
	ID        int
	RoomName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Restriction struct {
	ID              int
	RestrictionName string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Reservation struct {
	ID           int
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	CheckInDate  time.Time
	CheckOutDate time.Time
	RoomID       int
	Processed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Room         Room
}

type RoomRestriction struct {
	ID            int
	StartDate     time.Time
	EndDate       time.Time
	RoomID        int
	ReservationID int // 0 for owner blocks
	RestrictionID int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
	AccessLevel  int
}
