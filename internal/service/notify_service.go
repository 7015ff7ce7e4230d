package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"smartbooking/internal/config"
)

var ErrNotConfigured = errors.New("notification channel not configured")

type Email struct {
	ToAddress string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

type EmailSender interface {
	SendEmail(ctx context.Context, e Email) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, toNumber, body string) error
}

type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	log       *zap.Logger
}

func NewSendGridMailer(cfg *config.Config, log *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.SendGridFromEmail,
		fromName:  cfg.SendGridFromName,
		log:       log,
	}
}

func (m *SendGridMailer) SendEmail(ctx context.Context, e Email) error {
	if m.apiKey == "" || m.fromEmail == "" {
		m.log.Warn("SendGrid not configured, email not sent", zap.String("to", e.ToAddress))
		return fmt.Errorf("sendgrid: %w", ErrNotConfigured)
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(e.ToName, e.ToAddress)
	message := mail.NewSingleEmail(from, e.Subject, to, e.PlainText, e.HTML)

	response, err := sendgrid.NewSendClient(m.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending email through SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	m.log.Info("email sent",
		zap.String("to", e.ToAddress),
		zap.String("subject", e.Subject),
		zap.Int("status", response.StatusCode))
	return nil
}

type TwilioSMS struct {
	client     *twilio.RestClient
	fromNumber string
	log        *zap.Logger
}

// NewTwilioSMS returns a sender whose client is nil when the credentials are
// incomplete; SendSMS then reports ErrNotConfigured.
func NewTwilioSMS(cfg *config.Config, log *zap.Logger) *TwilioSMS {
	s := &TwilioSMS{fromNumber: cfg.TwilioFromNumber, log: log}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username:   cfg.TwilioAccountSID,
			Password:   cfg.TwilioAuthToken,
			AccountSid: cfg.TwilioAccountSID,
		})
	}
	return s
}

func (s *TwilioSMS) SendSMS(ctx context.Context, toNumber, body string) error {
	if s.client == nil {
		s.log.Warn("Twilio not configured, SMS not sent", zap.String("to", toNumber))
		return fmt.Errorf("twilio: %w", ErrNotConfigured)
	}
	if !strings.HasPrefix(toNumber, "+") {
		s.log.Warn("destination number is not E.164, SMS may fail", zap.String("to", toNumber))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending SMS through Twilio: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		s.log.Info("SMS sent", zap.String("to", toNumber), zap.String("sid", *resp.Sid))
	}
	return nil
}
