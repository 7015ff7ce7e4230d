package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbooking/internal/db"
)

var (
	checkIn  = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	checkOut = time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return conn, mock
}

func TestSearchAvailabilityByDatesByRoom(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "free", count: 0, want: true},
		{name: "overlapping restriction", count: 1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			mock.ExpectQuery(regexp.QuoteMeta("FROM room_restrictions")).
				WithArgs(2, checkIn, checkOut).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			ok, err := NewReservationRepository(conn).SearchAvailabilityByDatesByRoom(context.Background(), checkIn, checkOut, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSearchAvailabilityByDatesByRoom_QueryError(t *testing.T) {
	conn, mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM room_restrictions")).WillReturnError(boom)

	_, err := NewReservationRepository(conn).SearchAvailabilityByDatesByRoom(context.Background(), checkIn, checkOut, 2)
	assert.ErrorIs(t, err, boom)
}

func TestSearchAvailabilityForAllRooms(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.id NOT IN")).
		WithArgs(checkIn, checkOut).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_name"}).
			AddRow(1, "General's Quarters").
			AddRow(2, "Major's Suite"))

	rooms, err := NewReservationRepository(conn).SearchAvailabilityForAllRooms(context.Background(), checkIn, checkOut)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Major's Suite", rooms[1].RoomName)
}

func TestGetRoomByID_NotFound(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := NewReservationRepository(conn).GetRoomByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReservation(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs("Ada", "Lovelace", "ada@example.com", "555", checkIn, checkOut, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO room_restrictions")).
		WithArgs(checkIn, checkOut, 1, 17, db.RestrictionReservation, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res := &db.Reservation{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555",
		CheckInDate: checkIn, CheckOutDate: checkOut, RoomID: 1,
	}
	require.NoError(t, NewReservationRepository(conn).CreateReservation(context.Background(), res))
	assert.Equal(t, 17, res.ID)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestCreateReservation_RollsBackOnRestrictionFailure(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO room_restrictions")).
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := NewReservationRepository(conn).CreateReservation(context.Background(), &db.Reservation{RoomID: 1})
	assert.ErrorContains(t, err, "error inserting room restriction")
}
