package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"smartbooking/internal/db"
)

type ReminderStore interface {
	ReservationsCheckingInOn(ctx context.Context, day time.Time) ([]db.Reservation, error)
	MarkReminded(ctx context.Context, ids []int) (int64, error)
}

type Reminder interface {
	SendCheckInReminder(ctx context.Context, res db.Reservation) error
}

const jobTimeout = 5 * time.Minute

type JobService struct {
	Repo   ReminderStore
	sender Reminder
	log    *zap.Logger
	now    func() time.Time
}

func NewJobService(repo ReminderStore, sender Reminder, log *zap.Logger) *JobService {
	return &JobService{Repo: repo, sender: sender, log: log, now: time.Now}
}

// Schedule registers the reminder job on c.
func (s *JobService) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := s.SendCheckInReminders(ctx); err != nil {
			s.log.Error("check-in reminder job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling reminders with %q: %w", spec, err)
	}
	return nil
}

// SendCheckInReminders reminds every guest checking in tomorrow. Guests that
// could not be reached stay unmarked and are retried on the next run.
func (s *JobService) SendCheckInReminders(ctx context.Context) error {
	now := s.now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)

	reservations, err := s.Repo.ReservationsCheckingInOn(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("cron job: failed to get reservations checking in: %w", err)
	}
	if len(reservations) == 0 {
		s.log.Debug("cron job: no check-ins tomorrow")
		return nil
	}

	var sent []int
	for _, res := range reservations {
		if err := s.sender.SendCheckInReminder(ctx, res); err != nil {
			s.log.Warn("cron job: reminder failed", zap.Int("reservation_id", res.ID), zap.Error(err))
			continue
		}
		sent = append(sent, res.ID)
	}

	n, err := s.Repo.MarkReminded(ctx, sent)
	if err != nil {
		return fmt.Errorf("cron job: failed to mark reminders: %w", err)
	}
	s.log.Info("cron job: check-in reminders sent",
		zap.Int("due", len(reservations)),
		zap.Int64("sent", n))
	return nil
}
