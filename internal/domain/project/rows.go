package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Overview carries both the current column names and the legacy ones that
// older rows were written with.
type Overview struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`

	ProjectName             *string        `gorm:"column:project_name" json:"project_name"`
	Name                    *string        `gorm:"column:name" json:"name"`
	ClientName              *string        `gorm:"column:client_name" json:"client_name"`
	Client                  *string        `gorm:"column:client" json:"client"`
	Description             *string        `gorm:"column:description" json:"description"`
	ProjectGoal             *string        `gorm:"column:project_goal" json:"project_goal"`
	Goal                    *string        `gorm:"column:goal" json:"goal"`
	PrimaryAction           *string        `gorm:"column:primary_action" json:"primary_action"`
	TargetAudience          *string        `gorm:"column:target_audience" json:"target_audience"`
	Audience                *string        `gorm:"column:audience" json:"audience"`
	LaunchTarget            *string        `gorm:"column:launch_target" json:"launch_target"`
	Deadline                *string        `gorm:"column:deadline" json:"deadline"`
	BudgetRange             *string        `gorm:"column:budget_range" json:"budget_range"`
	Budget                  *string        `gorm:"column:budget" json:"budget"`
	ConstraintsRequirements *string        `gorm:"column:constraints_requirements" json:"constraints_requirements"`
	Constraints             *string        `gorm:"column:constraints" json:"constraints"`
	SuccessCriteria         *string        `gorm:"column:success_criteria" json:"success_criteria"`
	SuccessMetrics          *string        `gorm:"column:success_metrics" json:"success_metrics"`
	KPIs                    *string        `gorm:"column:kpis" json:"kpis"`
	KickoffDate             *string        `gorm:"column:kickoff_date" json:"kickoff_date"`
	PriorityLevel           *string        `gorm:"column:priority_level" json:"priority_level"`
	EstimatedDevTime        *string        `gorm:"column:estimated_dev_time" json:"estimated_dev_time"`
	TeamMembers             *string        `gorm:"column:team_members" json:"team_members"`
	ClientReviewDate        *string        `gorm:"column:client_review_date" json:"client_review_date"`
	ProjectType             *string        `gorm:"column:project_type" json:"project_type"`
	WebsiteFeaturesRequired datatypes.JSON `gorm:"column:website_features_required" json:"website_features_required"`
	WebsiteFeatures         datatypes.JSON `gorm:"column:website_features" json:"website_features"`
	Deliverables            *string        `gorm:"column:deliverables" json:"deliverables"`

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Overview) TableName() string { return "project_overview" }

type MoodBoard struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`
	StyleNotes *string   `gorm:"column:style_notes" json:"style_notes"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (MoodBoard) TableName() string { return "mood_board" }

const (
	MoodItemImage            = "image"
	MoodItemWebsiteReference = "website_reference"
)

type MoodBoardItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;column:project_id" json:"project_id"`
	Type      string    `gorm:"not null;column:type" json:"type"`
	URL       string    `gorm:"column:url" json:"url"`
	Title     string    `gorm:"column:title" json:"title"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (MoodBoardItem) TableName() string { return "mood_board_items" }

type StyleGuide struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`
	Data      datatypes.JSON `gorm:"column:data" json:"data"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (StyleGuide) TableName() string { return "style_guide" }

type Sitemap struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`
	Pages        datatypes.JSON `gorm:"column:pages" json:"pages"`
	CustomBlocks datatypes.JSON `gorm:"column:custom_blocks" json:"custom_blocks"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Sitemap) TableName() string { return "sitemap" }

type TechnicalSpecs struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`

	CurrentHosting          *string `gorm:"column:current_hosting" json:"current_hosting"`
	HostingNotes            *string `gorm:"column:hosting_notes" json:"hosting_notes"`
	ProposedHosting         *string `gorm:"column:proposed_hosting" json:"proposed_hosting"`
	CMS                     *string `gorm:"column:cms" json:"cms"`
	ContentUpdateFrequency  *string `gorm:"column:content_update_frequency" json:"content_update_frequency"`
	ContentManagers         *string `gorm:"column:content_managers" json:"content_managers"`
	EditableContent         *string `gorm:"column:editable_content" json:"editable_content"`
	ThirdPartyIntegrations  *string `gorm:"column:third_party_integrations" json:"third_party_integrations"`
	TechnicalRequirements   *string `gorm:"column:technical_requirements" json:"technical_requirements"`
	PerformanceRequirements *string `gorm:"column:performance_requirements" json:"performance_requirements"`
	BrowserSupport          *string `gorm:"column:browser_support" json:"browser_support"`
	SEORequirements         *string `gorm:"column:seo_requirements" json:"seo_requirements"`

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (TechnicalSpecs) TableName() string { return "technical_specs" }

type ContentSection struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`
	Data      datatypes.JSON `gorm:"column:data" json:"data"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ContentSection) TableName() string { return "content_section" }

type AssetSection struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"project_id"`
	Data      datatypes.JSON `gorm:"column:data" json:"data"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (AssetSection) TableName() string { return "asset_section" }

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;column:project_id" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;column:user_id" json:"user_id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Completed bool      `gorm:"not null;default:false;column:completed" json:"completed"`
	// IsComplete is the legacy completion column; either flag marks a task done.
	IsComplete *bool     `gorm:"column:is_complete" json:"is_complete,omitempty"`
	SortOrder  int       `gorm:"not null;default:0;column:sort_order" json:"sort_order"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

type SectionCompletionOverride struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_override_project_section;column:project_id" json:"project_id"`
	Section    string    `gorm:"not null;uniqueIndex:idx_override_project_section;column:section" json:"section"`
	IsComplete bool      `gorm:"not null;column:is_complete" json:"is_complete"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (SectionCompletionOverride) TableName() string { return "section_completion_overrides" }

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (r *Overview) BeforeCreate(*gorm.DB) error                  { newID(&r.ID); return nil }
func (r *MoodBoard) BeforeCreate(*gorm.DB) error                 { newID(&r.ID); return nil }
func (r *MoodBoardItem) BeforeCreate(*gorm.DB) error             { newID(&r.ID); return nil }
func (r *StyleGuide) BeforeCreate(*gorm.DB) error                { newID(&r.ID); return nil }
func (r *Sitemap) BeforeCreate(*gorm.DB) error                   { newID(&r.ID); return nil }
func (r *TechnicalSpecs) BeforeCreate(*gorm.DB) error            { newID(&r.ID); return nil }
func (r *ContentSection) BeforeCreate(*gorm.DB) error            { newID(&r.ID); return nil }
func (r *AssetSection) BeforeCreate(*gorm.DB) error              { newID(&r.ID); return nil }
func (r *Task) BeforeCreate(*gorm.DB) error                      { newID(&r.ID); return nil }
func (r *SectionCompletionOverride) BeforeCreate(*gorm.DB) error { newID(&r.ID); return nil }
