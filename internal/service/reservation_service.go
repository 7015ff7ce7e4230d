package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"smartbooking/internal/db"
	"smartbooking/internal/entities"
	apperrors "smartbooking/internal/errors"
	"smartbooking/internal/repository"
)

type ReservationStore interface {
	SearchAvailabilityByDatesByRoom(ctx context.Context, start, end time.Time, roomID int) (bool, error)
	SearchAvailabilityForAllRooms(ctx context.Context, start, end time.Time) ([]db.Room, error)
	GetRoomByID(ctx context.Context, id int) (db.Room, error)
	AllRooms(ctx context.Context) ([]db.Room, error)
	CreateReservation(ctx context.Context, res *db.Reservation) error
}

type ReservationNotifier interface {
	SendReservationConfirmation(res db.Reservation)
}

type ReservationService struct {
	Repo   ReservationStore
	sender ReservationNotifier
	log    *zap.Logger
}

func NewReservationService(repo ReservationStore, sender ReservationNotifier, log *zap.Logger) *ReservationService {
	return &ReservationService{Repo: repo, sender: sender, log: log}
}

// CheckRoomAvailability reports whether the room is free for [start, end).
func (s *ReservationService) CheckRoomAvailability(ctx context.Context, roomID int, start, end time.Time) (bool, error) {
	return s.Repo.SearchAvailabilityByDatesByRoom(ctx, start, end, roomID)
}

func (s *ReservationService) AvailableRooms(ctx context.Context, start, end time.Time) ([]entities.RoomResponse, error) {
	rooms, err := s.Repo.SearchAvailabilityForAllRooms(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return roomResponses(rooms), nil
}

func (s *ReservationService) ListRooms(ctx context.Context) ([]entities.RoomResponse, error) {
	rooms, err := s.Repo.AllRooms(ctx)
	if err != nil {
		return nil, err
	}
	return roomResponses(rooms), nil
}

func (s *ReservationService) GetRoom(ctx context.Context, id int) (db.Room, error) {
	room, err := s.Repo.GetRoomByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return room, apperrors.Wrap(http.StatusNotFound, "Room not found", err)
	}
	return room, err
}

// CreateReservation books the draft for the guest in req. The room is checked
// again because the draft may be stale by the time the form is posted.
func (s *ReservationService) CreateReservation(ctx context.Context, draft db.Reservation, req entities.ReservationRequest) (db.Reservation, error) {
	if err := validateStruct(req); err != nil {
		return draft, err
	}
	if draft.RoomID == 0 || draft.CheckInDate.IsZero() || draft.CheckOutDate.IsZero() {
		return draft, apperrors.ErrBadRequest("No room or dates selected")
	}
	if !draft.CheckOutDate.After(draft.CheckInDate) {
		return draft, apperrors.ErrBadRequest("Check-out must be after check-in")
	}

	available, err := s.Repo.SearchAvailabilityByDatesByRoom(ctx, draft.CheckInDate, draft.CheckOutDate, draft.RoomID)
	if err != nil {
		return draft, err
	}
	if !available {
		return draft, apperrors.NewHTTPError(http.StatusConflict, "Room is no longer available for these dates")
	}

	res := draft
	res.FirstName = req.FirstName
	res.LastName = req.LastName
	res.Email = req.Email
	res.Phone = req.Phone
	if err := s.Repo.CreateReservation(ctx, &res); err != nil {
		return draft, err
	}

	s.log.Info("reservation created",
		zap.Int("reservation_id", res.ID),
		zap.Int("room_id", res.RoomID),
		zap.Time("check_in", res.CheckInDate),
		zap.Time("check_out", res.CheckOutDate))
	s.sender.SendReservationConfirmation(res)
	return res, nil
}

func roomResponses(rooms []db.Room) []entities.RoomResponse {
	out := make([]entities.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, entities.RoomResponse{ID: r.ID, RoomName: r.RoomName})
	}
	return out
}
