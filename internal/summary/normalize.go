package summary

import (
	"encoding/json"
	"sort"
	"strings"

	"gorm.io/datatypes"

	"github.com/troovstudio/troov-backend/internal/domain/project"
)

// coalesce returns the first non-nil value, or "" when all are nil. An empty
// string is a value and stops the search.
func coalesce(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

func NormalizeOverview(row *project.Overview) OverviewData {
	out := OverviewData{
		PriorityLevel:   Seeds().DefaultPriority(),
		WebsiteFeatures: []string{},
	}
	if row == nil {
		return out
	}
	out.ProjectName = coalesce(row.ProjectName, row.Name)
	out.Client = coalesce(row.ClientName, row.Client)
	out.Description = coalesce(row.Description)
	out.Goal = coalesce(row.ProjectGoal, row.Goal)
	out.PrimaryAction = coalesce(row.PrimaryAction)
	out.Audience = coalesce(row.TargetAudience, row.Audience)
	out.Deadline = coalesce(row.LaunchTarget, row.Deadline)
	out.Budget = coalesce(row.BudgetRange, row.Budget)
	out.Constraints = coalesce(row.ConstraintsRequirements, row.Constraints)
	out.SuccessMetrics = coalesce(row.SuccessCriteria, row.SuccessMetrics)
	out.KPIs = coalesce(row.KPIs)
	out.KickoffDate = coalesce(row.KickoffDate)
	if row.PriorityLevel != nil {
		out.PriorityLevel = *row.PriorityLevel
	}
	out.EstimatedDevTime = coalesce(row.EstimatedDevTime)
	out.TeamMembers = coalesce(row.TeamMembers)
	out.ClientReviewDate = coalesce(row.ClientReviewDate)
	out.ProjectType = coalesce(row.ProjectType)
	out.Deliverables = coalesce(row.Deliverables)
	out.WebsiteFeatures = websiteFeatures(row.WebsiteFeaturesRequired, row.WebsiteFeatures)
	return out
}

// websiteFeatures prefers the first column that holds an array.
func websiteFeatures(columns ...datatypes.JSON) []string {
	for _, col := range columns {
		if _, ok := decodeArray(json.RawMessage(col)); ok {
			return decodeStringList(json.RawMessage(col))
		}
	}
	return []string{}
}

// NormalizeMoodBoard splits the child items by type, keeping their order.
func NormalizeMoodBoard(row *project.MoodBoard, items []*project.MoodBoardItem) MoodBoardData {
	out := MoodBoardData{
		InspirationImages: []MoodItem{},
		WebsiteReferences: []MoodItem{},
	}
	if row != nil && row.StyleNotes != nil {
		out.Notes = *row.StyleNotes
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		mi := MoodItem{ID: it.ID.String(), URL: it.URL, Title: it.Title, Notes: it.Notes}
		switch it.Type {
		case project.MoodItemImage:
			out.InspirationImages = append(out.InspirationImages, mi)
		case project.MoodItemWebsiteReference:
			out.WebsiteReferences = append(out.WebsiteReferences, mi)
		}
	}
	return out
}

func NormalizeStyleGuide(row *project.StyleGuide) StyleGuideData {
	out := StyleGuideData{
		Colors:       map[string]string{},
		CustomColors: []CustomColor{},
		Typography:   []TypographyEntry{},
		ButtonStyles: map[string]ButtonStyle{},
	}
	if row == nil {
		return out
	}
	obj := decodeObject(row.Data)
	if obj == nil {
		return out
	}
	out.Colors = decodeStringMap(obj["standardColors"])
	out.CustomColors = decodeList[CustomColor](obj["customColors"])
	out.Typography = normalizeTypography(obj["typography"])
	out.ButtonStyles = normalizeButtonStyles(obj["buttonStyles"])
	return out
}

// normalizeButtonStyles keeps every key; a non-object value becomes an empty
// style so its presence still counts.
func normalizeButtonStyles(raw json.RawMessage) map[string]ButtonStyle {
	out := map[string]ButtonStyle{}
	for name, v := range decodeObject(raw) {
		style := ButtonStyle{}
		if decodeObject(v) != nil {
			_ = json.Unmarshal(v, &style)
		}
		out[name] = style
	}
	return out
}

func NormalizeSitemap(row *project.Sitemap) SitemapData {
	out := SitemapData{
		Pages:        []SitemapPage{},
		CustomBlocks: []CustomBlock{},
	}
	if row == nil {
		return out
	}
	out.Pages = decodeList[SitemapPage](json.RawMessage(row.Pages))
	for i := range out.Pages {
		fillPage(&out.Pages[i])
	}
	out.CustomBlocks = decodeList[CustomBlock](json.RawMessage(row.CustomBlocks))
	return out
}

func fillPage(p *SitemapPage) {
	if p.Blocks == nil {
		p.Blocks = []SitemapBlock{}
	}
	if p.Children == nil {
		p.Children = []SitemapPage{}
	}
	for i := range p.Children {
		fillPage(&p.Children[i])
	}
}

func NormalizeTechnical(row *project.TechnicalSpecs) TechnicalData {
	if row == nil {
		return TechnicalData{}
	}
	return TechnicalData{
		CurrentHosting:          coalesce(row.CurrentHosting),
		HostingNotes:            coalesce(row.HostingNotes),
		ProposedHosting:         coalesce(row.ProposedHosting),
		CMS:                     coalesce(row.CMS),
		ContentUpdateFrequency:  coalesce(row.ContentUpdateFrequency),
		ContentManagers:         coalesce(row.ContentManagers),
		EditableContent:         coalesce(row.EditableContent),
		ThirdPartyIntegrations:  coalesce(row.ThirdPartyIntegrations),
		TechnicalRequirements:   coalesce(row.TechnicalRequirements),
		PerformanceRequirements: coalesce(row.PerformanceRequirements),
		BrowserSupport:          coalesce(row.BrowserSupport),
		SEORequirements:         coalesce(row.SEORequirements),
	}
}

func defaultContent() ContentData {
	return ContentData{
		ContentItems:      []ContentItem{},
		Assets:            []ContentAsset{},
		BrandMessaging:    BrandMessaging{KeyMessages: []string{}},
		MessagingPillars:  []MessagingPillar{},
		ContentGuidelines: []ContentGuideline{},
		SEOKeywords:       []string{},
		KeywordDifficulty: map[string]string{},
	}
}

func NormalizeContent(row *project.ContentSection) ContentData {
	out := defaultContent()
	if row == nil {
		return out
	}
	obj := decodeObject(row.Data)
	if obj == nil {
		return out
	}
	out.ContentItems = decodeList[ContentItem](obj["contentItems"])
	out.Assets = decodeList[ContentAsset](obj["assets"])
	out.ToneNotes, _ = decodeStrictString(obj["toneNotes"])
	out.BrandMessaging = normalizeBrandMessaging(obj.obj("brandMessaging"))
	out.MessagingPillars = decodeList[MessagingPillar](obj["messagingPillars"])
	out.ContentGuidelines = decodeList[ContentGuideline](obj["contentGuidelines"])
	out.SEOKeywords = decodeStringList(obj["seoKeywords"])
	out.MetaTitle, _ = decodeStrictString(obj["metaTitle"])
	out.MetaDescription, _ = decodeStrictString(obj["metaDescription"])
	out.FocusKeyword, _ = decodeStrictString(obj["focusKeyword"])
	out.KeywordDifficulty = decodeScalarMap(obj["keywordDifficulty"])
	out.CompetitorAnalysis, _ = decodeStrictString(obj["competitorAnalysis"])
	return out
}

// normalizeBrandMessaging overlays stored fields on the empty defaults.
func normalizeBrandMessaging(obj object) BrandMessaging {
	out := BrandMessaging{KeyMessages: []string{}}
	if obj == nil {
		return out
	}
	out.MissionStatement = obj.str("missionStatement")
	out.VisionStatement = obj.str("visionStatement")
	out.ValueProposition = obj.str("valueProposition")
	out.BrandPromise = obj.str("brandPromise")
	out.Tagline = obj.str("tagline")
	out.BrandVoice = obj.str("brandVoice")
	out.KeyMessages = decodeStringList(obj["keyMessages"])
	return out
}

func NormalizeAssets(row *project.AssetSection) AssetsData {
	out := AssetsData{UploadedAssets: []UploadedAsset{}}
	if row == nil {
		return out
	}
	obj := decodeObject(row.Data)
	if obj == nil {
		return out
	}
	out.UploadedAssets = decodeList[UploadedAsset](obj["uploadedAssets"])
	for i := range out.UploadedAssets {
		out.UploadedAssets[i].Category = strings.TrimSpace(out.UploadedAssets[i].Category)
	}
	return out
}

// NormalizeTasks orders tasks by sort order. Either completion column marks a
// task done.
func NormalizeTasks(rows []*project.Task) []Task {
	out := make([]Task, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, Task{
			ID:        r.ID.String(),
			Title:     r.Title,
			Completed: r.Completed || (r.IsComplete != nil && *r.IsComplete),
			Order:     r.SortOrder,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
