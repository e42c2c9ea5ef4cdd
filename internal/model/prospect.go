package model

import "time"

type Prospect struct {
	ID              int       `db:"id" json:"id"`
	CampaignID      int       `db:"campaign_id" json:"campaign_id"`
	CompanyName     string    `db:"company_name" json:"company_name"`
	Website         *string   `db:"website" json:"website,omitempty"`
	LinkedinURL     *string   `db:"linkedin_url" json:"linkedin_url,omitempty"`
	Industry        *string   `db:"industry" json:"industry,omitempty"`
	Location        *string   `db:"location" json:"location,omitempty"`
	EstimatedSize   *string   `db:"estimated_size" json:"estimated_size,omitempty"`
	TeamSize        *string   `db:"team_size" json:"team_size,omitempty"`
	FundingStage    *string   `db:"funding_stage" json:"funding_stage,omitempty"`
	ResearchSummary *string   `db:"research_summary" json:"research_summary,omitempty"`
	PainPoints      *string   `db:"pain_points" json:"pain_points,omitempty"`
	RelevanceScore  int       `db:"relevance_score" json:"relevance_score"`
	Status          string    `db:"status" json:"status"` // draft, researched, approved
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
