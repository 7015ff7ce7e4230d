package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"smartbooking/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(conn *sql.DB) *JobRepository {
	return &JobRepository{DB: conn}
}

// ReservationsCheckingInOn returns the reservations whose check-in falls on
// day and that have not been reminded yet.
func (r *JobRepository) ReservationsCheckingInOn(ctx context.Context, day time.Time) ([]db.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+reservationColumns+`
	FROM reservations r
	JOIN rooms rm ON rm.id = r.room_id
	WHERE r.check_in = $1 AND r.reminder_sent = FALSE
	ORDER BY r.id`, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("error querying reservations checking in: %w", err)
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
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return reservations, nil
}

// MarkReminded flags the given reservations so a rerun of the job skips them.
func (r *JobRepository) MarkReminded(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE reservations SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("error marking reservations reminded: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return n, nil
}
