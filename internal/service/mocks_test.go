package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"smartbooking/internal/db"
)

type mockReservationStore struct{ mock.Mock }

func (m *mockReservationStore) SearchAvailabilityByDatesByRoom(ctx context.Context, start, end time.Time, roomID int) (bool, error) {
	args := m.Called(ctx, start, end, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationStore) SearchAvailabilityForAllRooms(ctx context.Context, start, end time.Time) ([]db.Room, error) {
	args := m.Called(ctx, start, end)
	rooms, _ := args.Get(0).([]db.Room)
	return rooms, args.Error(1)
}

func (m *mockReservationStore) GetRoomByID(ctx context.Context, id int) (db.Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(db.Room), args.Error(1)
}

func (m *mockReservationStore) AllRooms(ctx context.Context) ([]db.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]db.Room)
	return rooms, args.Error(1)
}

func (m *mockReservationStore) CreateReservation(ctx context.Context, res *db.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []db.Reservation
}

func (n *recordingNotifier) SendReservationConfirmation(res db.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, res)
}

type fakeMailer struct {
	mu     sync.Mutex
	emails []Email
	err    error
}

func (f *fakeMailer) SendEmail(ctx context.Context, e Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, e)
	return f.err
}

type fakeSMS struct {
	mu   sync.Mutex
	to   []string
	body []string
	err  error
}

func (f *fakeSMS) SendSMS(ctx context.Context, toNumber, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.to = append(f.to, toNumber)
	f.body = append(f.body, body)
	return f.err
}
