package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/summary"
)

// SummaryData is everything the export renderer needs for one project.
type SummaryData struct {
	ProjectID    uuid.UUID                          `json:"projectId"`
	ProjectTitle string                             `json:"projectTitle"`
	CreatedAt    time.Time                          `json:"createdAt"`
	Filename     string                             `json:"filename"`
	Overview     summary.OverviewData               `json:"overview"`
	MoodBoard    summary.MoodBoardData              `json:"moodBoard"`
	StyleGuide   summary.StyleGuideData             `json:"styleGuide"`
	Sitemap      summary.SitemapData                `json:"sitemap"`
	Technical    summary.TechnicalData              `json:"technical"`
	Content      summary.ContentData                `json:"content"`
	Assets       summary.AssetsData                 `json:"assets"`
	AssetTabs    map[string][]summary.UploadedAsset `json:"assetTabs"`
	Tasks        []summary.Task                     `json:"tasks"`
	Visible      map[types.Section]bool             `json:"visible"`
	Completion   completion.Result                  `json:"completion"`
}

type SummaryService interface {
	Export(dbc dbctx.Context, projectID uuid.UUID) (*SummaryData, error)
}

type summaryService struct {
	log      *logger.Logger
	projects repos.ProjectRepo
	engine   *completion.Engine
}

func NewSummaryService(log *logger.Logger, projects repos.ProjectRepo, engine *completion.Engine) SummaryService {
	return &summaryService{
		log:      log.With("service", "SummaryService"),
		projects: projects,
		engine:   engine,
	}
}

func (s *summaryService) Export(dbc dbctx.Context, projectID uuid.UUID) (*SummaryData, error) {
	p, err := ownedProject(dbc, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	res, data, err := s.engine.ComputeWithData(dbc.Ctx, projectID)
	if err != nil {
		return nil, apierr.FromStore("load summary", err)
	}

	// Export visibility uses the same content rules as completion, without
	// overrides; tasks show whenever there are any.
	visible := summary.Evaluate(data)
	visible[types.SectionTasks] = len(data.Tasks) > 0

	name := strings.TrimSpace(data.Overview.ProjectName)
	if name == "" {
		name = p.Title
	}
	if strings.TrimSpace(name) == "" {
		name = p.ID.String()
	}

	return &SummaryData{
		ProjectID:    p.ID,
		ProjectTitle: p.Title,
		CreatedAt:    p.CreatedAt,
		Filename:     SummaryFilename(name),
		Overview:     data.Overview,
		MoodBoard:    data.MoodBoard,
		StyleGuide:   data.StyleGuide,
		Sitemap:      data.Sitemap,
		Technical:    data.Technical,
		Content:      data.Content,
		Assets:       data.Assets,
		AssetTabs:    data.Assets.Tabs(),
		Tasks:        data.Tasks,
		Visible:      visible,
		Completion:   res,
	}, nil
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)
	dashRuns            = regexp.MustCompile(`-+`)
)

// SummaryFilename builds the download name of a project export.
func SummaryFilename(projectName string) string {
	safe := unsafeFilenameChars.ReplaceAllString(projectName, "-")
	safe = dashRuns.ReplaceAllString(safe, "-")
	if safe == "" {
		safe = "summary"
	}
	return "troov-summary-" + safe + ".pdf"
}
