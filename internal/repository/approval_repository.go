package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/coldpilot/coldpilot-backend/internal/db"
	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/model"
)

type ApprovalRepositoryInterface interface {
	// Queue reads
	CountPendingEmails(ctx context.Context, userID int) (int, error)
	CountPendingReplies(ctx context.Context, userID int) (int, error)
	ListPendingEmails(ctx context.Context, userID, offset, limit int) ([]*model.GeneratedEmail, error)
	ListPendingReplies(ctx context.Context, userID, offset, limit int) ([]*model.ReplyDraft, error)

	// Single-draft transitions
	ApproveEmail(ctx context.Context, emailID, userID int) error
	RejectEmail(ctx context.Context, emailID, userID int, reason string) error
	ApproveReplyDraft(ctx context.Context, draftID, userID int) error
	RejectReplyDraft(ctx context.Context, draftID, userID int) error

	// Bulk transitions; returned ids are the rows that actually changed
	BulkApproveEmails(ctx context.Context, ids []int, userID int) ([]int, error)
	BulkRejectEmails(ctx context.Context, ids []int, userID int, reason string) ([]int, error)
	BulkApproveReplyDrafts(ctx context.Context, ids []int, userID int) ([]int, error)
	BulkRejectReplyDrafts(ctx context.Context, ids []int, userID int) ([]int, error)
}

type ApprovalRepository struct {
	DB *sql.DB
}

// ====================== Queue reads ======================

func (r *ApprovalRepository) CountPendingEmails(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM generated_emails e
		JOIN campaigns c ON c.id = e.campaign_id
		WHERE c.user_id = $1 AND e.status = 'draft'
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ApprovalRepository) CountPendingReplies(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reply_drafts d
		JOIN campaigns c ON c.id = d.campaign_id
		WHERE c.user_id = $1 AND d.status = 'draft'
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListPendingEmails returns draft outreach emails oldest first so the queue
// is fair to long-waiting drafts.
func (r *ApprovalRepository) ListPendingEmails(ctx context.Context, userID, offset, limit int) ([]*model.GeneratedEmail, error) {
	query := `
		SELECT e.id, e.prospect_id, e.campaign_id, e.recipient_email, e.recipient_name,
			   e.subject_line, e.email_body, e.personalization_notes, e.status,
			   e.rejection_reason, e.sent_at, e.created_at, e.updated_at
		FROM generated_emails e
		JOIN campaigns c ON c.id = e.campaign_id
		WHERE c.user_id = $1 AND e.status = 'draft'
		ORDER BY e.created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
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

func (r *ApprovalRepository) ListPendingReplies(ctx context.Context, userID, offset, limit int) ([]*model.ReplyDraft, error) {
	query := `
		SELECT d.id, d.campaign_id, d.prospect_id, d.inbound_from, d.inbound_subject,
			   d.inbound_body, d.draft_body, d.status, d.created_at, d.updated_at
		FROM reply_drafts d
		JOIN campaigns c ON c.id = d.campaign_id
		WHERE c.user_id = $1 AND d.status = 'draft'
		ORDER BY d.created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := []*model.ReplyDraft{}
	for rows.Next() {
		d := &model.ReplyDraft{}
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &d.ProspectID, &d.InboundFrom, &d.InboundSubject,
			&d.InboundBody, &d.DraftBody, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// ====================== Single-draft transitions ======================

// ApproveEmail flips one draft to approved and advances its prospect, both in
// one transaction. The status guard inside the UPDATE makes concurrent calls
// safe: exactly one caller wins, everyone else gets the not-found error.
func (r *ApprovalRepository) ApproveEmail(ctx context.Context, emailID, userID int) error {
	return db.WithTx(ctx, db.Handle{DB: r.DB}, func(tx db.Querier) error {
		prospectID, err := transitionEmail(ctx, tx, emailID, userID, "approved", nil)
		if err != nil {
			return err
		}
		return setProspectStatus(ctx, tx, []int{prospectID}, "approved")
	})
}

// RejectEmail flips one draft to rejected, stores the reason, and reverts the
// prospect to researched so the generator may retry with fresh copy.
func (r *ApprovalRepository) RejectEmail(ctx context.Context, emailID, userID int, reason string) error {
	return db.WithTx(ctx, db.Handle{DB: r.DB}, func(tx db.Querier) error {
		prospectID, err := transitionEmail(ctx, tx, emailID, userID, "rejected", &reason)
		if err != nil {
			return err
		}
		return setProspectStatus(ctx, tx, []int{prospectID}, "researched")
	})
}

func (r *ApprovalRepository) ApproveReplyDraft(ctx context.Context, draftID, userID int) error {
	return transitionReplyDraft(ctx, r.DB, draftID, userID, "approved")
}

func (r *ApprovalRepository) RejectReplyDraft(ctx context.Context, draftID, userID int) error {
	return transitionReplyDraft(ctx, r.DB, draftID, userID, "rejected")
}

// ====================== Bulk transitions ======================

func (r *ApprovalRepository) BulkApproveEmails(ctx context.Context, ids []int, userID int) ([]int, error) {
	return r.bulkTransitionEmails(ctx, ids, userID, "approved", nil, "approved")
}

func (r *ApprovalRepository) BulkRejectEmails(ctx context.Context, ids []int, userID int, reason string) ([]int, error) {
	return r.bulkTransitionEmails(ctx, ids, userID, "rejected", &reason, "researched")
}

func (r *ApprovalRepository) BulkApproveReplyDrafts(ctx context.Context, ids []int, userID int) ([]int, error) {
	return bulkTransitionReplyDrafts(ctx, r.DB, ids, userID, "approved")
}

func (r *ApprovalRepository) BulkRejectReplyDrafts(ctx context.Context, ids []int, userID int) ([]int, error) {
	return bulkTransitionReplyDrafts(ctx, r.DB, ids, userID, "rejected")
}

// ====================== Statement helpers ======================

// transitionEmail runs the guarded single-row UPDATE and returns the owning
// prospect id. A zero-row result means the guard missed: absent, not owned,
// or no longer draft.
func transitionEmail(ctx context.Context, q db.Querier, emailID, userID int, status string, reason *string) (int, error) {
	query := `
		UPDATE generated_emails e
		SET status = $3, rejection_reason = COALESCE($4, rejection_reason), updated_at = NOW()
		WHERE e.id = $1
		  AND e.status = 'draft'
		  AND EXISTS (
			  SELECT 1 FROM campaigns c
			  WHERE c.id = e.campaign_id AND c.user_id = $2
		  )
		RETURNING e.prospect_id
	`
	var prospectID int
	err := q.QueryRowContext(ctx, query, emailID, userID, status, reason).Scan(&prospectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.NewEmailNotFound(emailID)
		}
		return 0, err
	}
	return prospectID, nil
}

func setProspectStatus(ctx context.Context, q db.Querier, prospectIDs []int, status string) error {
	if len(prospectIDs) == 0 {
		return nil
	}
	query := `UPDATE prospects SET status = $1 WHERE id = ANY($2)`
	_, err := q.ExecContext(ctx, query, status, pq.Array(prospectIDs))
	return err
}

func transitionReplyDraft(ctx context.Context, q db.Querier, draftID, userID int, status string) error {
	query := `
		UPDATE reply_drafts d
		SET status = $3, updated_at = NOW()
		WHERE d.id = $1
		  AND d.status = 'draft'
		  AND EXISTS (
			  SELECT 1 FROM campaigns c
			  WHERE c.id = d.campaign_id AND c.user_id = $2
		  )
		RETURNING d.id
	`
	var id int
	err := q.QueryRowContext(ctx, query, draftID, userID, status).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NewReplyDraftNotFound(draftID)
		}
		return err
	}
	return nil
}

// bulkTransitionEmails moves every eligible id in one round-trip, then fixes
// the linked prospects with one batched UPDATE. Everything runs in a single
// transaction so a failed prospect update reverts the email transition.
func (r *ApprovalRepository) bulkTransitionEmails(ctx context.Context, ids []int, userID int, status string, reason *string, prospectStatus string) ([]int, error) {
	query := `
		UPDATE generated_emails e
		SET status = $3, rejection_reason = COALESCE($4, rejection_reason), updated_at = NOW()
		WHERE e.id = ANY($1)
		  AND e.status = 'draft'
		  AND EXISTS (
			  SELECT 1 FROM campaigns c
			  WHERE c.id = e.campaign_id AND c.user_id = $2
		  )
		RETURNING e.id, e.prospect_id
	`

	transitioned := []int{}
	err := db.WithTx(ctx, db.Handle{DB: r.DB}, func(tx db.Querier) error {
		rows, err := tx.QueryContext(ctx, query, pq.Array(ids), userID, status, reason)
		if err != nil {
			return err
		}
		defer rows.Close()

		prospectIDs := []int{}
		for rows.Next() {
			var emailID, prospectID int
			if err := rows.Scan(&emailID, &prospectID); err != nil {
				return err
			}
			transitioned = append(transitioned, emailID)
			prospectIDs = append(prospectIDs, prospectID)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		return setProspectStatus(ctx, tx, prospectIDs, prospectStatus)
	})
	if err != nil {
		return nil, err
	}
	return transitioned, nil
}

func bulkTransitionReplyDrafts(ctx context.Context, q db.Querier, ids []int, userID int, status string) ([]int, error) {
	query := `
		UPDATE reply_drafts d
		SET status = $3, updated_at = NOW()
		WHERE d.id = ANY($1)
		  AND d.status = 'draft'
		  AND EXISTS (
			  SELECT 1 FROM campaigns c
			  WHERE c.id = d.campaign_id AND c.user_id = $2
		  )
		RETURNING d.id
	`
	rows, err := q.QueryContext(ctx, query, pq.Array(ids), userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transitioned := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		transitioned = append(transitioned, id)
	}
	return transitioned, rows.Err()
}

var _ ApprovalRepositoryInterface = (*ApprovalRepository)(nil)
