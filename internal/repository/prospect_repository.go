package repository

import (
	"context"
	"database/sql"

	"github.com/coldpilot/coldpilot-backend/internal/model"
)

// ProspectRepositoryInterface defines methods used by the campaign service.
type ProspectRepositoryInterface interface {
	Create(ctx context.Context, p *model.Prospect) error
	GetByID(ctx context.Context, id, userID int) (*model.Prospect, error)
	ListByCampaign(ctx context.Context, campaignID, userID int) ([]*model.Prospect, error)
}

type ProspectRepository struct {
	DB *sql.DB
}

func (r *ProspectRepository) Create(ctx context.Context, p *model.Prospect) error {
	if p.Status == "" {
		p.Status = "draft"
	}
	if p.RelevanceScore == 0 {
		p.RelevanceScore = 50
	}
	query := `
		INSERT INTO prospects
		(campaign_id, company_name, website, linkedin_url, industry, location,
		 estimated_size, team_size, funding_stage, research_summary, pain_points,
		 relevance_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		p.CampaignID, p.CompanyName, p.Website, p.LinkedinURL, p.Industry, p.Location,
		p.EstimatedSize, p.TeamSize, p.FundingStage, p.ResearchSummary, p.PainPoints,
		p.RelevanceScore, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

// GetByID fetches a prospect only when its campaign belongs to userID.
func (r *ProspectRepository) GetByID(ctx context.Context, id, userID int) (*model.Prospect, error) {
	query := `
		SELECT p.id, p.campaign_id, p.company_name, p.website, p.linkedin_url,
			   p.industry, p.location, p.estimated_size, p.team_size, p.funding_stage,
			   p.research_summary, p.pain_points, p.relevance_score, p.status, p.created_at
		FROM prospects p
		JOIN campaigns c ON c.id = p.campaign_id
		WHERE p.id = $1 AND c.user_id = $2
	`
	var p model.Prospect
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&p.ID, &p.CampaignID, &p.CompanyName, &p.Website, &p.LinkedinURL,
		&p.Industry, &p.Location, &p.EstimatedSize, &p.TeamSize, &p.FundingStage,
		&p.ResearchSummary, &p.PainPoints, &p.RelevanceScore, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProspectRepository) ListByCampaign(ctx context.Context, campaignID, userID int) ([]*model.Prospect, error) {
	query := `
		SELECT p.id, p.campaign_id, p.company_name, p.website, p.linkedin_url,
			   p.industry, p.location, p.estimated_size, p.team_size, p.funding_stage,
			   p.research_summary, p.pain_points, p.relevance_score, p.status, p.created_at
		FROM prospects p
		JOIN campaigns c ON c.id = p.campaign_id
		WHERE p.campaign_id = $1 AND c.user_id = $2
		ORDER BY p.relevance_score DESC, p.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, campaignID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prospects := []*model.Prospect{}
	for rows.Next() {
		p := &model.Prospect{}
		if err := rows.Scan(
			&p.ID, &p.CampaignID, &p.CompanyName, &p.Website, &p.LinkedinURL,
			&p.Industry, &p.Location, &p.EstimatedSize, &p.TeamSize, &p.FundingStage,
			&p.ResearchSummary, &p.PainPoints, &p.RelevanceScore, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, rows.Err()
}

var _ ProspectRepositoryInterface = (*ProspectRepository)(nil)
