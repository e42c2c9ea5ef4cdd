package model

import "time"

type ReplyDraft struct {
	ID             int       `db:"id" json:"id"`
	CampaignID     int       `db:"campaign_id" json:"campaign_id"`
	ProspectID     int       `db:"prospect_id" json:"prospect_id"`
	InboundFrom    string    `db:"inbound_from" json:"inbound_from"`
	InboundSubject *string   `db:"inbound_subject" json:"inbound_subject,omitempty"`
	InboundBody    *string   `db:"inbound_body" json:"inbound_body,omitempty"`
	DraftBody      string    `db:"draft_body" json:"draft_body"`
	Status         string    `db:"status" json:"status"` // draft, approved, rejected
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
