package repository

import (
	"context"
	"database/sql"
	"encoding/json"
)

// AnalyticsRepositoryInterface is the append-only audit sink. Emission is
// best-effort; callers must never fail a transition on an insert error.
type AnalyticsRepositoryInterface interface {
	Insert(ctx context.Context, eventType string, userID *int, metadata any) error
}

type AnalyticsRepository struct {
	DB *sql.DB
}

func (r *AnalyticsRepository) Insert(ctx context.Context, eventType string, userID *int, metadata any) error {
	var payload []byte
	if metadata != nil {
		var err error
		payload, err = json.Marshal(metadata)
		if err != nil {
			return err
		}
	}

	query := `INSERT INTO analytics_events (event_type, user_id, metadata) VALUES ($1, $2, $3)`
	_, err := r.DB.ExecContext(ctx, query, eventType, userID, payload)
	return err
}

var _ AnalyticsRepositoryInterface = (*AnalyticsRepository)(nil)
