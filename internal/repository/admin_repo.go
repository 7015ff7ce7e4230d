package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smartbooking/internal/db"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(conn *sql.DB) *AdminRepository {
	return &AdminRepository{DB: conn}
}

const reservationColumns = `
	r.id, r.first_name, r.last_name, r.email, r.phone, r.check_in, r.check_out,
	r.room_id, r.processed, r.created_at, r.updated_at, rm.id, rm.room_name`

func scanReservation(sc interface{ Scan(...any) error }) (db.Reservation, error) {
	var res db.Reservation
	err := sc.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.Email, &res.Phone, &res.CheckInDate, &res.CheckOutDate,
		&res.RoomID, &res.Processed, &res.CreatedAt, &res.UpdatedAt, &res.Room.ID, &res.Room.RoomName,
	)
	return res, err
}

// ListReservations returns every reservation, or only the unprocessed ones
// when onlyNew is set.
func (r *AdminRepository) ListReservations(ctx context.Context, onlyNew bool) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	FROM reservations r
	JOIN rooms rm ON rm.id = r.room_id`
	if onlyNew {
		query += " WHERE r.processed = FALSE"
	}
	query += " ORDER BY r.check_in"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}

func (r *AdminRepository) GetReservationByID(ctx context.Context, id int) (db.Reservation, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+reservationColumns+`
	FROM reservations r
	JOIN rooms rm ON rm.id = r.room_id
	WHERE r.id = $1`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
		}
		return res, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	return res, nil
}

// UpdateReservation changes the guest details. Dates and room stay as booked.
func (r *AdminRepository) UpdateReservation(ctx context.Context, res db.Reservation) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE reservations
		SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $6`,
		res.FirstName, res.LastName, res.Email, res.Phone, time.Now().UTC(), res.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating reservation %d: %w", res.ID, err)
	}
	return expectAffected(result, "reservation", res.ID)
}

func (r *AdminRepository) UpdateProcessed(ctx context.Context, id int, processed bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE reservations SET processed = $1, updated_at = $2 WHERE id = $3`,
		processed, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("error updating processed flag of reservation %d: %w", id, err)
	}
	return expectAffected(result, "reservation", id)
}

// DeleteReservation removes the reservation. Its room restriction goes with
// it through the ON DELETE CASCADE foreign key.
func (r *AdminRepository) DeleteReservation(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reservation %d: %w", id, err)
	}
	return expectAffected(result, "reservation", id)
}

// RestrictionsForRoomByDate returns the restrictions of a room that overlap [start, end).
func (r *AdminRepository) RestrictionsForRoomByDate(ctx context.Context, roomID int, start, end time.Time) ([]db.RoomRestriction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, start_date, end_date, room_id, COALESCE(reservation_id, 0), restriction_id, created_at, updated_at
		FROM room_restrictions
		WHERE room_id = $1 AND $2 < end_date AND $3 > start_date
		ORDER BY start_date`,
		roomID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying restrictions for room %d: %w", roomID, err)
	}
	defer rows.Close()

	var restrictions []db.RoomRestriction
	for rows.Next() {
		var rr db.RoomRestriction
		if err := rows.Scan(&rr.ID, &rr.StartDate, &rr.EndDate, &rr.RoomID, &rr.ReservationID,
			&rr.RestrictionID, &rr.CreatedAt, &rr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning restriction: %w", err)
		}
		restrictions = append(restrictions, rr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating restrictions: %w", err)
	}
	return restrictions, nil
}

// InsertBlockForRoom creates a one-night owner block starting at day.
func (r *AdminRepository) InsertBlockForRoom(ctx context.Context, roomID int, day time.Time) (int, error) {
	now := time.Now().UTC()
	var id int
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO room_restrictions (start_date, end_date, room_id, restriction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		day, day.AddDate(0, 0, 1), roomID, db.RestrictionOwnerBlock, now, now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting block for room %d: %w", roomID, err)
	}
	return id, nil
}

// DeleteBlockByID removes an owner block. Reservation restrictions are
// never touched here.
func (r *AdminRepository) DeleteBlockByID(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM room_restrictions WHERE id = $1 AND restriction_id = $2`,
		id, db.RestrictionOwnerBlock,
	)
	if err != nil {
		return fmt.Errorf("error deleting block %d: %w", id, err)
	}
	return expectAffected(result, "block", id)
}

func expectAffected(result sql.Result, what string, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
