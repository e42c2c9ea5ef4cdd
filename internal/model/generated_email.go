package model

import "time"

type GeneratedEmail struct {
	ID                   int        `db:"id" json:"id"`
	ProspectID           int        `db:"prospect_id" json:"prospect_id"`
	CampaignID           int        `db:"campaign_id" json:"campaign_id"`
	RecipientEmail       string     `db:"recipient_email" json:"recipient_email"`
	RecipientName        *string    `db:"recipient_name" json:"recipient_name,omitempty"`
	SubjectLine          string     `db:"subject_line" json:"subject_line"`
	EmailBody            string     `db:"email_body" json:"email_body"`
	PersonalizationNotes *string    `db:"personalization_notes" json:"personalization_notes,omitempty"`
	Status               string     `db:"status" json:"status"` // draft, approved, rejected, sent, failed
	RejectionReason      *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`
	SentAt               *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
