package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartbooking/internal/db"
	"smartbooking/internal/entities"
	apperrors "smartbooking/internal/errors"
	"smartbooking/internal/repository"
)

var (
	checkIn  = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	checkOut = time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
)

func draft() db.Reservation {
	return db.Reservation{
		RoomID:       1,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Room:         db.Room{ID: 1, RoomName: "General's Quarters"},
	}
}

var validRequest = entities.ReservationRequest{
	FirstName: "Ada",
	LastName:  "Lovelace",
	Email:     "ada@example.com",
	Phone:     "+15551234",
}

func TestCreateReservation(t *testing.T) {
	store := &mockReservationStore{}
	notifier := &recordingNotifier{}
	svc := NewReservationService(store, notifier, zap.NewNop())

	store.On("SearchAvailabilityByDatesByRoom", mock.Anything, checkIn, checkOut, 1).Return(true, nil)
	store.On("CreateReservation", mock.Anything, mock.AnythingOfType("*db.Reservation")).
		Run(func(args mock.Arguments) { args.Get(1).(*db.Reservation).ID = 21 }).
		Return(nil)

	res, err := svc.CreateReservation(context.Background(), draft(), validRequest)
	require.NoError(t, err)
	assert.Equal(t, 21, res.ID)
	assert.Equal(t, "Ada", res.FirstName)
	assert.Equal(t, "General's Quarters", res.Room.RoomName)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 21, notifier.sent[0].ID)
	store.AssertExpectations(t)
}

func TestCreateReservation_Validation(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, &recordingNotifier{}, zap.NewNop())

	req := validRequest
	req.FirstName = "Al"
	req.Email = "not-an-email"
	_, err := svc.CreateReservation(context.Background(), draft(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Contains(t, apperrors.MessageOf(err), "first_name must be at least 3 characters long")
	assert.Contains(t, apperrors.MessageOf(err), "email must be a valid email address")
}

func TestCreateReservation_NoDraft(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, &recordingNotifier{}, zap.NewNop())

	_, err := svc.CreateReservation(context.Background(), db.Reservation{}, validRequest)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	d := draft()
	d.CheckOutDate = d.CheckInDate
	_, err = svc.CreateReservation(context.Background(), d, validRequest)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestCreateReservation_RoomTaken(t *testing.T) {
	store := &mockReservationStore{}
	notifier := &recordingNotifier{}
	svc := NewReservationService(store, notifier, zap.NewNop())
	store.On("SearchAvailabilityByDatesByRoom", mock.Anything, checkIn, checkOut, 1).Return(false, nil)

	_, err := svc.CreateReservation(context.Background(), draft(), validRequest)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	assert.Empty(t, notifier.sent)
	store.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestGetRoom_NotFound(t *testing.T) {
	store := &mockReservationStore{}
	svc := NewReservationService(store, &recordingNotifier{}, zap.NewNop())
	store.On("GetRoomByID", mock.Anything, 5).Return(db.Room{}, repository.ErrNotFound)

	_, err := svc.GetRoom(context.Background(), 5)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestAvailableRooms(t *testing.T) {
	store := &mockReservationStore{}
	svc := NewReservationService(store, &recordingNotifier{}, zap.NewNop())
	store.On("SearchAvailabilityForAllRooms", mock.Anything, checkIn, checkOut).
		Return([]db.Room{{ID: 2, RoomName: "Major's Suite"}}, nil)

	rooms, err := svc.AvailableRooms(context.Background(), checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, []entities.RoomResponse{{ID: 2, RoomName: "Major's Suite"}}, rooms)
}
