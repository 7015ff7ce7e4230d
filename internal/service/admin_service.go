package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"smartbooking/internal/db"
	"smartbooking/internal/entities"
	apperrors "smartbooking/internal/errors"
	"smartbooking/internal/repository"
	"smartbooking/internal/utils"
)

type AdminStore interface {
	ListReservations(ctx context.Context, onlyNew bool) ([]db.Reservation, error)
	GetReservationByID(ctx context.Context, id int) (db.Reservation, error)
	UpdateReservation(ctx context.Context, res db.Reservation) error
	UpdateProcessed(ctx context.Context, id int, processed bool) error
	DeleteReservation(ctx context.Context, id int) error
	RestrictionsForRoomByDate(ctx context.Context, roomID int, start, end time.Time) ([]db.RoomRestriction, error)
	InsertBlockForRoom(ctx context.Context, roomID int, day time.Time) (int, error)
	DeleteBlockByID(ctx context.Context, id int) error
}

type RoomFinder interface {
	GetRoomByID(ctx context.Context, id int) (db.Room, error)
}

type AdminService struct {
	adminRepo AdminStore
	rooms     RoomFinder
}

func NewAdminService(adminRepo AdminStore, rooms RoomFinder) *AdminService {
	return &AdminService{adminRepo: adminRepo, rooms: rooms}
}

func (s *AdminService) ListReservations(ctx context.Context, onlyNew bool) (entities.ReservationsList, error) {
	reservations, err := s.adminRepo.ListReservations(ctx, onlyNew)
	if err != nil {
		return entities.ReservationsList{}, err
	}
	list := entities.ReservationsList{
		Total:        len(reservations),
		Reservations: make([]entities.ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		list.Reservations = append(list.Reservations, ToReservationResponse(r))
	}
	return list, nil
}

func (s *AdminService) GetReservation(ctx context.Context, id int) (entities.ReservationResponse, error) {
	res, err := s.adminRepo.GetReservationByID(ctx, id)
	if err != nil {
		return entities.ReservationResponse{}, notFound(err, "Reservation not found")
	}
	return ToReservationResponse(res), nil
}

func (s *AdminService) UpdateReservation(ctx context.Context, id int, req entities.UpdateReservationRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	err := s.adminRepo.UpdateReservation(ctx, db.Reservation{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	return notFound(err, "Reservation not found")
}

func (s *AdminService) ProcessReservation(ctx context.Context, id int) error {
	return notFound(s.adminRepo.UpdateProcessed(ctx, id, true), "Reservation not found")
}

func (s *AdminService) DeleteReservation(ctx context.Context, id int) error {
	return notFound(s.adminRepo.DeleteReservation(ctx, id), "Reservation not found")
}

// RoomRestrictions returns the calendar of a room between two form dates.
func (s *AdminService) RoomRestrictions(ctx context.Context, roomID int, start, end string) ([]entities.RoomRestrictionResponse, error) {
	from, to, err := utils.ParseRange(start, end)
	if err != nil {
		return nil, apperrors.Wrap(http.StatusBadRequest, "Invalid date range", err)
	}
	if _, err := s.rooms.GetRoomByID(ctx, roomID); err != nil {
		return nil, notFound(err, "Room not found")
	}

	restrictions, err := s.adminRepo.RestrictionsForRoomByDate(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]entities.RoomRestrictionResponse, 0, len(restrictions))
	for _, rr := range restrictions {
		out = append(out, entities.RoomRestrictionResponse{
			ID:            rr.ID,
			StartDate:     utils.FormatDate(rr.StartDate),
			EndDate:       utils.FormatDate(rr.EndDate),
			ReservationID: rr.ReservationID,
			RestrictionID: rr.RestrictionID,
		})
	}
	return out, nil
}

// BlockRoom adds a one-night owner block on day.
func (s *AdminService) BlockRoom(ctx context.Context, roomID int, day string) (int, error) {
	d, err := utils.ParseDate(day)
	if err != nil {
		return 0, apperrors.Wrap(http.StatusBadRequest, "Invalid date", err)
	}
	if _, err := s.rooms.GetRoomByID(ctx, roomID); err != nil {
		return 0, notFound(err, "Room not found")
	}
	return s.adminRepo.InsertBlockForRoom(ctx, roomID, d)
}

func (s *AdminService) DeleteBlock(ctx context.Context, id int) error {
	return notFound(s.adminRepo.DeleteBlockByID(ctx, id), "Block not found")
}

func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.Wrap(http.StatusNotFound, msg, err)
	}
	return err
}

// ToReservationResponse renders a stored reservation for API clients.
func ToReservationResponse(r db.Reservation) entities.ReservationResponse {
	return entities.ReservationResponse{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		CheckIn:   utils.FormatDate(r.CheckInDate),
		CheckOut:  utils.FormatDate(r.CheckOutDate),
		RoomID:    r.RoomID,
		RoomName:  r.Room.RoomName,
		Processed: r.Processed,
		CreatedAt: r.CreatedAt,
	}
}
