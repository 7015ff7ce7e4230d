package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"
	"time"

	"go.uber.org/zap"

	"smartbooking/internal/db"
	"smartbooking/internal/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplate = template.Must(template.ParseFS(templateFS, "templates/reservation_email.html"))

const sendTimeout = 30 * time.Second

// SenderService turns reservations into guest and owner messages.
type SenderService struct {
	mail       EmailSender
	sms        SMSSender
	ownerEmail string
	log        *zap.Logger
	now        func() time.Time

	wg sync.WaitGroup
}

func NewSenderService(mail EmailSender, sms SMSSender, ownerEmail string, log *zap.Logger) *SenderService {
	return &SenderService{mail: mail, sms: sms, ownerEmail: ownerEmail, log: log, now: time.Now}
}

// SendReservationConfirmation notifies the guest by email and SMS and the
// owner by email. Delivery happens in the background; failures are logged.
func (s *SenderService) SendReservationConfirmation(res db.Reservation) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		log := s.log.With(zap.Int("reservation_id", res.ID))
		if err := s.sendGuestEmail(ctx, res, false); err != nil {
			log.Error("confirmation email to guest failed", zap.Error(err))
		}
		if s.ownerEmail != "" {
			if err := s.mail.SendEmail(ctx, s.ownerMessage(res)); err != nil {
				log.Error("reservation notice to owner failed", zap.Error(err))
			}
		}
		if res.Phone != "" {
			body := fmt.Sprintf("Smart Booking: reservation #%d confirmed.\nCheck-in: %s.\nMore details in your email.",
				res.ID, res.CheckInDate.Format("Jan 2"))
			if err := s.sms.SendSMS(ctx, res.Phone, body); err != nil {
				log.Error("confirmation SMS failed", zap.Error(err))
			}
		}
	}()
}

// SendCheckInReminder delivers the day-before reminder. The email must go
// through; an SMS failure is only logged.
func (s *SenderService) SendCheckInReminder(ctx context.Context, res db.Reservation) error {
	if err := s.sendGuestEmail(ctx, res, true); err != nil {
		return err
	}
	if res.Phone != "" {
		body := fmt.Sprintf("Smart Booking: your stay in the %s starts tomorrow (%s). See you soon!",
			res.Room.RoomName, res.CheckInDate.Format("Jan 2"))
		if err := s.sms.SendSMS(ctx, res.Phone, body); err != nil {
			s.log.Warn("reminder SMS failed", zap.Int("reservation_id", res.ID), zap.Error(err))
		}
	}
	return nil
}

// Wait blocks until background deliveries finish.
func (s *SenderService) Wait() {
	s.wg.Wait()
}

func (s *SenderService) sendGuestEmail(ctx context.Context, res db.Reservation, reminder bool) error {
	data := s.emailData(res, reminder)

	var html bytes.Buffer
	if err := emailTemplate.Execute(&html, data); err != nil {
		return fmt.Errorf("rendering reservation email: %w", err)
	}

	subject := fmt.Sprintf("Reservation confirmation #%d", res.ID)
	intro := "Your reservation is confirmed."
	if reminder {
		subject = fmt.Sprintf("Your stay starts tomorrow - reservation #%d", res.ID)
		intro = "This is a reminder that your stay starts tomorrow."
	}
	plain := fmt.Sprintf("Hello %s,\n\n%s\n\nRoom: %s\nCheck-in: %s\nCheck-out: %s\n\nSmart Booking",
		data.GuestName, intro, data.RoomName, data.CheckIn, data.CheckOut)

	return s.mail.SendEmail(ctx, Email{
		ToAddress: res.Email,
		ToName:    data.GuestName,
		Subject:   subject,
		PlainText: plain,
		HTML:      html.String(),
	})
}

func (s *SenderService) ownerMessage(res db.Reservation) Email {
	return Email{
		ToAddress: s.ownerEmail,
		ToName:    "Owner",
		Subject:   fmt.Sprintf("New reservation #%d", res.ID),
		PlainText: fmt.Sprintf("A reservation has been made for %s from %s to %s by %s %s (%s).",
			res.Room.RoomName, res.CheckInDate.Format("01/02/2006"), res.CheckOutDate.Format("01/02/2006"),
			res.FirstName, res.LastName, res.Email),
	}
}

func (s *SenderService) emailData(res db.Reservation, reminder bool) entities.ReservationEmailData {
	return entities.ReservationEmailData{
		GuestName:     res.FirstName + " " + res.LastName,
		ReservationID: res.ID,
		RoomName:      res.Room.RoomName,
		CheckIn:       res.CheckInDate.Format("Monday, Jan 2 2006"),
		CheckOut:      res.CheckOutDate.Format("Monday, Jan 2 2006"),
		CurrentYear:   s.now().Year(),
		Reminder:      reminder,
	}
}
