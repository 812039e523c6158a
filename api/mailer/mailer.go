package mailer

import (
	"context"
	"fmt"

	"github.com/5pponent/diary-server/api/config"
	"github.com/5pponent/diary-server/api/logging"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Purpose string

const (
	PurposeJoin  Purpose = "join"
	PurposeLogin Purpose = "login"
)

// Sender delivers authentication codes by e-mail.
type Sender interface {
	SendAuthCode(ctx context.Context, to, code string, purpose Purpose) error
}

// New returns a SendGrid sender, or a sender that only logs when no API key is
// configured.
func New(cfg config.MailConfig) Sender {
	h := hermes.Hermes{
		Product: hermes.Product{
			Name: cfg.ProductName,
			Link: cfg.ProductLink,
		},
	}
	if cfg.SendGridAPIKey == "" {
		logging.Log.Warn("SENDGRID_API_KEY not set, auth codes will only be logged")
		return &LogSender{hermes: h}
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.ProductName, cfg.From),
		hermes: h,
	}
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
	hermes hermes.Hermes
}

func (s *SendGridSender) SendAuthCode(ctx context.Context, to, code string, purpose Purpose) error {
	subject, html, text, err := renderAuthCode(s.hermes, code, purpose)
	if err != nil {
		return err
	}
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), text, html)
	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("send auth code: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send auth code: sendgrid responded %d", resp.StatusCode)
	}
	logging.Log.WithField("purpose", purpose).Info("auth code mail sent")
	return nil
}

// LogSender renders the mail and logs the code instead of delivering it.
type LogSender struct {
	hermes hermes.Hermes
}

func (s *LogSender) SendAuthCode(ctx context.Context, to, code string, purpose Purpose) error {
	if _, _, _, err := renderAuthCode(s.hermes, code, purpose); err != nil {
		return err
	}
	logging.Log.WithFields(map[string]interface{}{
		"to":      to,
		"purpose": purpose,
		"code":    code,
	}).Info("auth code mail not delivered")
	return nil
}

func renderAuthCode(h hermes.Hermes, code string, purpose Purpose) (subject, html, text string, err error) {
	intro := "Use the code below to verify your e-mail address and finish signing up."
	subject = "[Diary] Verify your e-mail"
	if purpose == PurposeLogin {
		intro = "We noticed a login from a new location. Use the code below to confirm it was you."
		subject = "[Diary] Confirm your login"
	}
	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{intro},
			Actions: []hermes.Action{
				{
					Instructions: "Your code is valid for 5 minutes:",
					InviteCode:   code,
				},
			},
			Outros: []string{"If you did not request this code, you can ignore this e-mail."},
		},
	}
	if html, err = h.GenerateHTML(email); err != nil {
		return "", "", "", fmt.Errorf("render auth code mail: %w", err)
	}
	if text, err = h.GeneratePlainText(email); err != nil {
		return "", "", "", fmt.Errorf("render auth code mail: %w", err)
	}
	return subject, html, text, nil
}
