package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"

	"github.com/coldpilot/coldpilot-backend/internal/model"
)

// ResendSender delivers outreach emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers one approved outreach email.
func (s *ResendSender) Send(ctx context.Context, email *model.GeneratedEmail) error {
	to := email.RecipientEmail
	if email.RecipientName != nil && *email.RecipientName != "" {
		to = fmt.Sprintf("%s <%s>", *email.RecipientName, email.RecipientEmail)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: email.SubjectLine,
		Text:    email.EmailBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"message_id": sent.Id,
		"email_id":   email.ID,
	}).Info("resend delivery accepted")
	return nil
}
