package service_test

import (
	"context"
	"testing"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/model"
	"github.com/coldpilot/coldpilot-backend/internal/service"
)

// fakeCampaignRepo serves a fixed campaign set for one user.
type fakeCampaignRepo struct {
	campaigns []*model.Campaign
}

func (m *fakeCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = len(m.campaigns) + 1
	m.campaigns = append(m.campaigns, c)
	return nil
}

func (m *fakeCampaignRepo) GetByID(ctx context.Context, id, userID int) (*model.Campaign, error) {
	for _, c := range m.campaigns {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(id)
}

func (m *fakeCampaignRepo) ListCampaigns(ctx context.Context, userID, offset, limit int, status string) ([]*model.Campaign, int, error) {
	filtered := []*model.Campaign{}
	for _, c := range m.campaigns {
		if c.UserID != userID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		filtered = append(filtered, c)
	}
	total := len(filtered)

	start := offset
	end := offset + limit
	if start >= total {
		return []*model.Campaign{}, total, nil
	}
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (m *fakeCampaignRepo) Update(ctx context.Context, c *model.Campaign) error { return nil }

func (m *fakeCampaignRepo) UpdateStatus(ctx context.Context, campaignID, userID int, status string) error {
	return nil
}

func (m *fakeCampaignRepo) Delete(ctx context.Context, campaignID, userID int) error { return nil }

func (m *fakeCampaignRepo) GetCampaignStats(ctx context.Context, campaignID, userID int) (map[string]int, error) {
	return map[string]int{"draft": 2, "approved": 1, "rejected": 0, "sent": 3, "failed": 0}, nil
}

type fakeProspectRepo struct {
	prospects []*model.Prospect
}

func (m *fakeProspectRepo) Create(ctx context.Context, p *model.Prospect) error {
	p.ID = len(m.prospects) + 1
	m.prospects = append(m.prospects, p)
	return nil
}

func (m *fakeProspectRepo) GetByID(ctx context.Context, id, userID int) (*model.Prospect, error) {
	return nil, nil
}

func (m *fakeProspectRepo) ListByCampaign(ctx context.Context, campaignID, userID int) ([]*model.Prospect, error) {
	out := []*model.Prospect{}
	for _, p := range m.prospects {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, nil
}

func seededCampaigns(userID, n int) []*model.Campaign {
	campaigns := make([]*model.Campaign, 0, n)
	for i := 1; i <= n; i++ {
		campaigns = append(campaigns, &model.Campaign{ID: i, UserID: userID, Name: "Campaign", Status: "active"})
	}
	return campaigns
}

func TestListCampaignsPagination(t *testing.T) {
	repo := &fakeCampaignRepo{campaigns: seededCampaigns(1, 25)}
	svc := &service.CampaignService{CampaignRepo: repo}

	seen := map[int]bool{}
	pageSize := 10
	totalPages := (25 + pageSize - 1) / pageSize

	for page := 1; page <= totalPages; page++ {
		campaigns, pagination, err := svc.ListCampaigns(context.Background(), 1, page, pageSize, "active")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pagination["total_count"] != 25 {
			t.Errorf("expected total_count 25, got %d", pagination["total_count"])
		}
		if pagination["total_pages"] != totalPages {
			t.Errorf("expected total_pages %d, got %d", totalPages, pagination["total_pages"])
		}
		for _, c := range campaigns {
			if seen[c.ID] {
				t.Errorf("duplicate campaign ID %d across pages", c.ID)
			}
			seen[c.ID] = true
		}
	}

	if len(seen) != 25 {
		t.Errorf("expected 25 unique campaigns, got %d", len(seen))
	}
}

func TestListCampaignsClampsPageSize(t *testing.T) {
	repo := &fakeCampaignRepo{campaigns: seededCampaigns(1, 5)}
	svc := &service.CampaignService{CampaignRepo: repo}

	campaigns, pagination, err := svc.ListCampaigns(context.Background(), 1, 0, -3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pagination["page"] != 1 || pagination["page_size"] != 20 {
		t.Errorf("expected defaults page=1 page_size=20, got %v", pagination)
	}
	if len(campaigns) != 5 {
		t.Errorf("expected 5 campaigns, got %d", len(campaigns))
	}
}

func TestListCampaignsScopedToUser(t *testing.T) {
	repo := &fakeCampaignRepo{campaigns: append(seededCampaigns(1, 3), &model.Campaign{ID: 99, UserID: 2, Status: "active"})}
	svc := &service.CampaignService{CampaignRepo: repo}

	campaigns, _, err := svc.ListCampaigns(context.Background(), 1, 1, 20, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range campaigns {
		if c.UserID != 1 {
			t.Errorf("campaign %d belongs to user %d, leak across tenants", c.ID, c.UserID)
		}
	}
}

func TestGetCampaignDetailsIncludesStats(t *testing.T) {
	repo := &fakeCampaignRepo{campaigns: seededCampaigns(1, 1)}
	svc := &service.CampaignService{CampaignRepo: repo}

	details, err := svc.GetCampaignDetails(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.EmailStats["draft"] != 2 || details.EmailStats["sent"] != 3 {
		t.Errorf("unexpected stats: %v", details.EmailStats)
	}
	if details.EmailStats["total"] != 6 {
		t.Errorf("expected total 6, got %d", details.EmailStats["total"])
	}
}

func TestGetCampaignDetailsNotOwned(t *testing.T) {
	repo := &fakeCampaignRepo{campaigns: seededCampaigns(1, 1)}
	svc := &service.CampaignService{CampaignRepo: repo}

	if _, err := svc.GetCampaignDetails(context.Background(), 1, 2); err == nil {
		t.Error("expected not found for non-owner")
	}
}

func TestCreateCampaignRequiresName(t *testing.T) {
	svc := &service.CampaignService{CampaignRepo: &fakeCampaignRepo{}}

	_, err := svc.CreateCampaign(context.Background(), 1, "", nil, nil)
	if err == nil {
		t.Error("expected invalid input for empty name")
	}
}

func TestAddProspectChecksOwnership(t *testing.T) {
	repo := &fakeCampaignRepo{campaigns: seededCampaigns(1, 1)}
	prospects := &fakeProspectRepo{}
	svc := &service.CampaignService{CampaignRepo: repo, ProspectRepo: prospects}

	if _, err := svc.AddProspect(context.Background(), 2, &model.Prospect{CampaignID: 1, CompanyName: "Acme"}); err == nil {
		t.Error("expected error adding prospect to someone else's campaign")
	}

	created, err := svc.AddProspect(context.Background(), 1, &model.Prospect{CampaignID: 1, CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected prospect to be assigned an id")
	}
}
