package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smartbooking/internal/db"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(conn *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: conn}
}

// SearchAvailabilityByDatesByRoom reports whether no restriction of the room
// overlaps [start, end).
func (r *ReservationRepository) SearchAvailabilityByDatesByRoom(ctx context.Context, start, end time.Time, roomID int) (bool, error) {
	query := `
		SELECT COUNT(id)
		FROM room_restrictions
		WHERE room_id = $1 AND $2 < end_date AND $3 > start_date`

	var numRows int
	if err := r.DB.QueryRowContext(ctx, query, roomID, start, end).Scan(&numRows); err != nil {
		return false, fmt.Errorf("error searching availability for room %d: %w", roomID, err)
	}
	return numRows == 0, nil
}

// SearchAvailabilityForAllRooms returns the rooms with no restriction in [start, end).
func (r *ReservationRepository) SearchAvailabilityForAllRooms(ctx context.Context, start, end time.Time) ([]db.Room, error) {
	query := `
		SELECT r.id, r.room_name
		FROM rooms r
		WHERE r.id NOT IN (
			SELECT rr.room_id FROM room_restrictions rr
			WHERE $1 < rr.end_date AND $2 > rr.start_date
		)
		ORDER BY r.id`

	rows, err := r.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error searching available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.RoomName); err != nil {
			return nil, fmt.Errorf("error scanning available room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating available rooms: %w", err)
	}
	return rooms, nil
}

func (r *ReservationRepository) GetRoomByID(ctx context.Context, id int) (db.Room, error) {
	var room db.Room
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, room_name, created_at, updated_at FROM rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.RoomName, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return room, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return room, fmt.Errorf("error querying room %d: %w", id, err)
	}
	return room, nil
}

func (r *ReservationRepository) AllRooms(ctx context.Context) ([]db.Room, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, room_name, created_at, updated_at FROM rooms ORDER BY room_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.RoomName, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rooms: %w", err)
	}
	return rooms, nil
}

// CreateReservation stores the reservation and the room restriction that
// blocks its dates in one transaction. res.ID is set on success.
func (r *ReservationRepository) CreateReservation(ctx context.Context, res *db.Reservation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting reservation transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations
		(first_name, last_name, email, phone, check_in, check_out, room_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		res.FirstName, res.LastName, res.Email, res.Phone,
		res.CheckInDate, res.CheckOutDate, res.RoomID, now, now,
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO room_restrictions
		(start_date, end_date, room_id, reservation_id, restriction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.CheckInDate, res.CheckOutDate, res.RoomID, res.ID, db.RestrictionReservation, now, now,
	)
	if err != nil {
		return fmt.Errorf("error inserting room restriction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing reservation: %w", err)
	}
	res.CreatedAt, res.UpdatedAt = now, now
	return nil
}
