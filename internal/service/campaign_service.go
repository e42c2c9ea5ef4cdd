package service

import (
	"context"
	"time"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/model"
	"github.com/coldpilot/coldpilot-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	ProspectRepo repository.ProspectRepositoryInterface
}

type CampaignDetails struct {
	ID             int            `json:"id"`
	UserID         int            `json:"user_id"`
	Name           string         `json:"name"`
	Description    *string        `json:"description,omitempty"`
	ICPDescription *string        `json:"icp_description,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
	EmailStats     map[string]int `json:"email_stats"`
}

func (s *CampaignService) CreateCampaign(ctx context.Context, userID int, name string, description, icpDescription *string) (*model.Campaign, error) {
	if name == "" {
		return nil, appErrors.NewInvalidInput("campaign name is required")
	}

	c := &model.Campaign{
		UserID:         userID,
		Name:           name,
		Description:    description,
		ICPDescription: icpDescription,
		Status:         "active",
	}
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaigns fetches the acting user's campaigns with pagination.
func (s *CampaignService) ListCampaigns(ctx context.Context, userID, page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(ctx, userID, offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// GetCampaignDetails fetches a campaign with per-status outreach email stats.
func (s *CampaignService) GetCampaignDetails(ctx context.Context, campaignID, userID int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(ctx, campaignID, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.CampaignRepo.GetCampaignStats(ctx, campaignID, userID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range stats {
		total += count
	}
	stats["total"] = total

	return &CampaignDetails{
		ID:             campaign.ID,
		UserID:         campaign.UserID,
		Name:           campaign.Name,
		Description:    campaign.Description,
		ICPDescription: campaign.ICPDescription,
		Status:         campaign.Status,
		CreatedAt:      campaign.CreatedAt,
		UpdatedAt:      campaign.UpdatedAt,
		EmailStats:     stats,
	}, nil
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, c *model.Campaign) error {
	if c.Name == "" {
		return appErrors.NewInvalidInput("campaign name is required")
	}
	switch c.Status {
	case "active", "paused", "archived":
	default:
		return appErrors.NewInvalidInput("status must be active, paused, or archived")
	}
	return s.CampaignRepo.Update(ctx, c)
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, campaignID, userID int) error {
	return s.CampaignRepo.Delete(ctx, campaignID, userID)
}

// ListProspects returns a campaign's prospects, best fits first.
func (s *CampaignService) ListProspects(ctx context.Context, campaignID, userID int) ([]*model.Prospect, error) {
	if _, err := s.CampaignRepo.GetByID(ctx, campaignID, userID); err != nil {
		return nil, err
	}
	return s.ProspectRepo.ListByCampaign(ctx, campaignID, userID)
}

// AddProspect manually adds a prospect to a campaign the user owns.
func (s *CampaignService) AddProspect(ctx context.Context, userID int, p *model.Prospect) (*model.Prospect, error) {
	if p.CompanyName == "" {
		return nil, appErrors.NewInvalidInput("company name is required")
	}
	if _, err := s.CampaignRepo.GetByID(ctx, p.CampaignID, userID); err != nil {
		return nil, err
	}
	if err := s.ProspectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
