package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/troovstudio/troov-backend/internal/domain/project"
)

// The functions below turn normalized section data back into the rows the
// editors persist. Overview and technical rows always write the current
// column names.

func DefaultOverview() OverviewData { return NormalizeOverview(nil) }

func DefaultStyleGuide() StyleGuideData {
	c := Seeds()
	return StyleGuideData{
		Colors:       map[string]string{},
		CustomColors: []CustomColor{},
		Typography:   c.DefaultTypography(),
		ButtonStyles: c.DefaultButtonStyles(),
	}
}

func DefaultSitemap() SitemapData {
	return SitemapData{Pages: Seeds().DefaultPages(), CustomBlocks: []CustomBlock{}}
}

func ptr(s string) *string { return &s }

func OverviewRow(projectID uuid.UUID, o OverviewData) (*project.Overview, error) {
	features := o.WebsiteFeatures
	if features == nil {
		features = []string{}
	}
	wf, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("encode website features: %w", err)
	}
	// An omitted priority keeps the seeded level.
	priority := strings.TrimSpace(o.PriorityLevel)
	if priority == "" {
		priority = Seeds().DefaultPriority()
	}
	return &project.Overview{
		ProjectID:               projectID,
		ProjectName:             ptr(o.ProjectName),
		ClientName:              ptr(o.Client),
		Description:             ptr(o.Description),
		ProjectGoal:             ptr(o.Goal),
		PrimaryAction:           ptr(o.PrimaryAction),
		TargetAudience:          ptr(o.Audience),
		LaunchTarget:            ptr(o.Deadline),
		BudgetRange:             ptr(o.Budget),
		ConstraintsRequirements: ptr(o.Constraints),
		SuccessCriteria:         ptr(o.SuccessMetrics),
		KPIs:                    ptr(o.KPIs),
		KickoffDate:             ptr(o.KickoffDate),
		PriorityLevel:           ptr(priority),
		EstimatedDevTime:        ptr(o.EstimatedDevTime),
		TeamMembers:             ptr(o.TeamMembers),
		ClientReviewDate:        ptr(o.ClientReviewDate),
		ProjectType:             ptr(o.ProjectType),
		WebsiteFeaturesRequired: datatypes.JSON(wf),
		Deliverables:            ptr(o.Deliverables),
	}, nil
}

// MoodBoardRow carries only the notes; items live in their own table.
func MoodBoardRow(projectID uuid.UUID, m MoodBoardData) *project.MoodBoard {
	return &project.MoodBoard{ProjectID: projectID, StyleNotes: ptr(m.Notes)}
}

type styleGuideBlob struct {
	StandardColors map[string]string      `json:"standardColors"`
	CustomColors   []CustomColor          `json:"customColors"`
	Typography     []TypographyEntry      `json:"typography"`
	ButtonStyles   map[string]ButtonStyle `json:"buttonStyles"`
}

func StyleGuideRow(projectID uuid.UUID, sg StyleGuideData) (*project.StyleGuide, error) {
	blob := styleGuideBlob{
		StandardColors: sg.Colors,
		CustomColors:   sg.CustomColors,
		Typography:     sg.Typography,
		ButtonStyles:   sg.ButtonStyles,
	}
	if blob.StandardColors == nil {
		blob.StandardColors = map[string]string{}
	}
	if blob.CustomColors == nil {
		blob.CustomColors = []CustomColor{}
	}
	if blob.Typography == nil {
		blob.Typography = []TypographyEntry{}
	}
	if blob.ButtonStyles == nil {
		blob.ButtonStyles = map[string]ButtonStyle{}
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("encode style guide: %w", err)
	}
	return &project.StyleGuide{ProjectID: projectID, Data: datatypes.JSON(raw)}, nil
}

func SitemapRow(projectID uuid.UUID, s SitemapData) (*project.Sitemap, error) {
	pages := s.Pages
	if pages == nil {
		pages = []SitemapPage{}
	}
	for i := range pages {
		fillPage(&pages[i])
	}
	blocks := s.CustomBlocks
	if blocks == nil {
		blocks = []CustomBlock{}
	}
	rawPages, err := json.Marshal(pages)
	if err != nil {
		return nil, fmt.Errorf("encode sitemap pages: %w", err)
	}
	rawBlocks, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("encode custom blocks: %w", err)
	}
	return &project.Sitemap{
		ProjectID:    projectID,
		Pages:        datatypes.JSON(rawPages),
		CustomBlocks: datatypes.JSON(rawBlocks),
	}, nil
}

func TechnicalRow(projectID uuid.UUID, t TechnicalData) *project.TechnicalSpecs {
	return &project.TechnicalSpecs{
		ProjectID:               projectID,
		CurrentHosting:          ptr(t.CurrentHosting),
		HostingNotes:            ptr(t.HostingNotes),
		ProposedHosting:         ptr(t.ProposedHosting),
		CMS:                     ptr(t.CMS),
		ContentUpdateFrequency:  ptr(t.ContentUpdateFrequency),
		ContentManagers:         ptr(t.ContentManagers),
		EditableContent:         ptr(t.EditableContent),
		ThirdPartyIntegrations:  ptr(t.ThirdPartyIntegrations),
		TechnicalRequirements:   ptr(t.TechnicalRequirements),
		PerformanceRequirements: ptr(t.PerformanceRequirements),
		BrowserSupport:          ptr(t.BrowserSupport),
		SEORequirements:         ptr(t.SEORequirements),
	}
}

func ContentRow(projectID uuid.UUID, c ContentData) (*project.ContentSection, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return &project.ContentSection{ProjectID: projectID, Data: datatypes.JSON(raw)}, nil
}

func AssetsRow(projectID uuid.UUID, a AssetsData) (*project.AssetSection, error) {
	if a.UploadedAssets == nil {
		a.UploadedAssets = []UploadedAsset{}
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode assets: %w", err)
	}
	return &project.AssetSection{ProjectID: projectID, Data: datatypes.JSON(raw)}, nil
}
