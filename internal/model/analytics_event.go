package model

import (
	"encoding/json"
	"time"
)

type AnalyticsEvent struct {
	ID        int             `db:"id" json:"id"`
	EventType string          `db:"event_type" json:"event_type"`
	UserID    *int            `db:"user_id" json:"user_id,omitempty"`
	Metadata  json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
