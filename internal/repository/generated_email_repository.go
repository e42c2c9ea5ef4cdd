package repository

import (
	"context"
	"database/sql"

	"github.com/coldpilot/coldpilot-backend/internal/model"
)

// GeneratedEmailRepository serves the dispatch worker: it reads approved
// emails and records delivery outcomes.
type GeneratedEmailRepository struct {
	DB *sql.DB
}

// GetByID fetches an outreach email by ID; nil when absent.
func (r *GeneratedEmailRepository) GetByID(ctx context.Context, id int) (*model.GeneratedEmail, error) {
	query := `
		SELECT id, prospect_id, campaign_id, recipient_email, recipient_name,
			   subject_line, email_body, personalization_notes, status,
			   rejection_reason, sent_at, created_at, updated_at
		FROM generated_emails
		WHERE id=$1
	`
	var e model.GeneratedEmail
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.ProspectID, &e.CampaignID, &e.RecipientEmail, &e.RecipientName,
		&e.SubjectLine, &e.EmailBody, &e.PersonalizationNotes, &e.Status,
		&e.RejectionReason, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// MarkSent transitions approved -> sent. The status guard keeps a redelivered
// queue message from double-sending.
func (r *GeneratedEmailRepository) MarkSent(ctx context.Context, id int) error {
	query := `
		UPDATE generated_emails
		SET status='sent', sent_at=NOW(), updated_at=NOW()
		WHERE id=$1 AND status='approved'
	`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

// MarkFailed transitions approved -> failed and keeps the driver message for
// operator logs.
func (r *GeneratedEmailRepository) MarkFailed(ctx context.Context, id int, reason string) error {
	query := `
		UPDATE generated_emails
		SET status='failed', rejection_reason=$2, updated_at=NOW()
		WHERE id=$1 AND status='approved'
	`
	_, err := r.DB.ExecContext(ctx, query, id, reason)
	return err
}

// ListApproved returns emails waiting for dispatch, oldest first, so the
// worker can requeue anything left over from a previous run.
func (r *GeneratedEmailRepository) ListApproved(ctx context.Context, limit int) ([]*model.GeneratedEmail, error) {
	query := `
		SELECT id, prospect_id, campaign_id, recipient_email, recipient_name,
			   subject_line, email_body, personalization_notes, status,
			   rejection_reason, sent_at, created_at, updated_at
		FROM generated_emails
		WHERE status='approved'
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []*model.GeneratedEmail{}
	for rows.Next() {
		e := &model.GeneratedEmail{}
		if err := rows.Scan(
			&e.ID, &e.ProspectID, &e.CampaignID, &e.RecipientEmail, &e.RecipientName,
			&e.SubjectLine, &e.EmailBody, &e.PersonalizationNotes, &e.Status,
			&e.RejectionReason, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
