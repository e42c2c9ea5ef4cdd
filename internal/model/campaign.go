package model

import "time"

type Campaign struct {
	ID             int        `db:"id" json:"id"`
	UserID         int        `db:"user_id" json:"user_id"`
	Name           string     `db:"name" json:"name"`
	Description    *string    `db:"description" json:"description,omitempty"`
	ICPDescription *string    `db:"icp_description" json:"icp_description,omitempty"`
	Status         string     `db:"status" json:"status"` // active, paused, archived
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
