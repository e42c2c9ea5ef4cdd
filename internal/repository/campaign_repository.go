package repository

import (
	"context"
	"database/sql"
	"fmt"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, id, userID int) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, userID, offset, limit int, status string) ([]*model.Campaign, int, error)
	Update(ctx context.Context, c *model.Campaign) error
	UpdateStatus(ctx context.Context, campaignID, userID int, status string) error
	Delete(ctx context.Context, campaignID, userID int) error
	GetCampaignStats(ctx context.Context, campaignID, userID int) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	if c.Status == "" {
		c.Status = "active"
	}
	query := `
		INSERT INTO campaigns (user_id, name, description, icp_description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query, c.UserID, c.Name, c.Description, c.ICPDescription, c.Status).
		Scan(&c.ID, &c.CreatedAt)
}

// GetByID fetches a campaign only when it belongs to userID.
func (r *CampaignRepository) GetByID(ctx context.Context, id, userID int) (*model.Campaign, error) {
	query := `
		SELECT id, user_id, name, description, icp_description, status, created_at, updated_at
		FROM campaigns WHERE id = $1 AND user_id = $2
	`
	var c model.Campaign
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.ICPDescription, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(ctx context.Context, userID, offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `
		SELECT id, user_id, name, description, icp_description, status, created_at, updated_at
		FROM campaigns WHERE user_id = $1
	`
	args := []interface{}{userID}
	argPos := 2

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.ICPDescription, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE user_id = $1`
	argsCount := []interface{}{userID}
	if status != "" {
		countQuery += " AND status=$2"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	query := `
		UPDATE campaigns
		SET name=$1, description=$2, icp_description=$3, status=$4, updated_at=NOW()
		WHERE id=$5 AND user_id=$6
	`
	res, err := r.DB.ExecContext(ctx, query, c.Name, c.Description, c.ICPDescription, c.Status, c.ID, c.UserID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.NewCampaignNotFound(c.ID)
	}
	return nil
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, campaignID, userID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=NOW() WHERE id=$2 AND user_id=$3`
	res, err := r.DB.ExecContext(ctx, query, status, campaignID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	return nil
}

// Delete removes the campaign; prospects, drafts and reply drafts cascade.
func (r *CampaignRepository) Delete(ctx context.Context, campaignID, userID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id=$1 AND user_id=$2`, campaignID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	return nil
}

// GetCampaignStats returns outreach email counts grouped by status.
func (r *CampaignRepository) GetCampaignStats(ctx context.Context, campaignID, userID int) (map[string]int, error) {
	query := `
		SELECT e.status, COUNT(*)
		FROM generated_emails e
		JOIN campaigns c ON c.id = e.campaign_id
		WHERE e.campaign_id = $1 AND c.user_id = $2
		GROUP BY e.status
	`
	rows, err := r.DB.QueryContext(ctx, query, campaignID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"draft": 0, "approved": 0, "rejected": 0, "sent": 0, "failed": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
