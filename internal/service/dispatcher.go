package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/coldpilot/coldpilot-backend/internal/model"
)

// DispatchEmailRepository defines the methods the dispatcher needs.
type DispatchEmailRepository interface {
	GetByID(ctx context.Context, id int) (*model.GeneratedEmail, error)
	MarkSent(ctx context.Context, id int) error
	MarkFailed(ctx context.Context, id int, reason string) error
}

// SendFunc delivers one approved email.
type SendFunc func(ctx context.Context, email *model.GeneratedEmail) error

// Dispatcher drains approved outreach emails from a job channel and records
// the delivery outcome.
type Dispatcher struct {
	Emails DispatchEmailRepository
	Jobs   <-chan int
	Send   SendFunc
}

func NewDispatcher(repo DispatchEmailRepository, jobs <-chan int, send SendFunc) *Dispatcher {
	return &Dispatcher{
		Emails: repo,
		Jobs:   jobs,
		Send:   send,
	}
}

// Start processes jobs until the channel closes.
func (d *Dispatcher) Start(ctx context.Context) {
	for emailID := range d.Jobs {
		if err := d.Process(ctx, emailID); err != nil {
			logrus.WithError(err).WithField("email_id", emailID).Error("dispatch failed")
		}
	}
}

// Process sends a single approved email. Rows that are missing or no longer
// approved are skipped: the queue may redeliver and the approval may have
// been raced by a reject.
func (d *Dispatcher) Process(ctx context.Context, emailID int) error {
	email, err := d.Emails.GetByID(ctx, emailID)
	if err != nil {
		return fmt.Errorf("load email %d: %w", emailID, err)
	}
	if email == nil {
		logrus.WithField("email_id", emailID).Warn("dispatch job for missing email, skipping")
		return nil
	}
	if email.Status != "approved" {
		logrus.WithFields(logrus.Fields{
			"email_id": emailID,
			"status":   email.Status,
		}).Info("dispatch job for non-approved email, skipping")
		return nil
	}

	if err := d.Send(ctx, email); err != nil {
		if markErr := d.Emails.MarkFailed(ctx, emailID, err.Error()); markErr != nil {
			logrus.WithError(markErr).WithField("email_id", emailID).Error("failed to mark email failed")
		}
		return fmt.Errorf("send email %d: %w", emailID, err)
	}

	if err := d.Emails.MarkSent(ctx, emailID); err != nil {
		return fmt.Errorf("mark email %d sent: %w", emailID, err)
	}

	logrus.WithField("email_id", emailID).Info("email dispatched")
	return nil
}
