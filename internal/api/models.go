package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"smartbooking/internal/db"
	"smartbooking/internal/entities"
)

// Admin auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Owner blocks
type BlockRequest struct {
	Date string `json:"date"`
}

type BlockResponse struct {
	ID int `json:"id"`
}

type CSRFTokenResponse struct {
	Token string `json:"csrf_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type BookingService interface {
	CheckRoomAvailability(ctx context.Context, roomID int, start, end time.Time) (bool, error)
	AvailableRooms(ctx context.Context, start, end time.Time) ([]entities.RoomResponse, error)
	ListRooms(ctx context.Context) ([]entities.RoomResponse, error)
	GetRoom(ctx context.Context, id int) (db.Room, error)
	CreateReservation(ctx context.Context, draft db.Reservation, req entities.ReservationRequest) (db.Reservation, error)
}

type AdminService interface {
	ListReservations(ctx context.Context, onlyNew bool) (entities.ReservationsList, error)
	GetReservation(ctx context.Context, id int) (entities.ReservationResponse, error)
	UpdateReservation(ctx context.Context, id int, req entities.UpdateReservationRequest) error
	ProcessReservation(ctx context.Context, id int) error
	DeleteReservation(ctx context.Context, id int) error
	RoomRestrictions(ctx context.Context, roomID int, start, end string) ([]entities.RoomRestrictionResponse, error)
	BlockRoom(ctx context.Context, roomID int, day string) (int, error)
	DeleteBlock(ctx context.Context, id int) error
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
