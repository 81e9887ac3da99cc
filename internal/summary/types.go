package summary

// OverviewData is the normalized project overview. Every field is defaulted;
// PriorityLevel falls back to the seeded priority.
type OverviewData struct {
	ProjectName      string   `json:"projectName"`
	Client           string   `json:"client"`
	Description      string   `json:"description"`
	Goal             string   `json:"goal"`
	PrimaryAction    string   `json:"primaryAction"`
	Audience         string   `json:"audience"`
	Deadline         string   `json:"deadline"`
	Budget           string   `json:"budget"`
	Constraints      string   `json:"constraints"`
	SuccessMetrics   string   `json:"successMetrics"`
	KPIs             string   `json:"kpis"`
	KickoffDate      string   `json:"kickoffDate"`
	PriorityLevel    string   `json:"priorityLevel"`
	EstimatedDevTime string   `json:"estimatedDevTime"`
	TeamMembers      string   `json:"teamMembers"`
	ClientReviewDate string   `json:"clientReviewDate"`
	ProjectType      string   `json:"projectType"`
	WebsiteFeatures  []string `json:"websiteFeatures"`
	Deliverables     string   `json:"deliverables"`
}

// textFields lists the overview fields scanned for content. Priority is
// deliberately absent.
func (o OverviewData) textFields() []string {
	return []string{
		o.ProjectName, o.Client, o.Description, o.Goal, o.PrimaryAction,
		o.Audience, o.Deadline, o.Budget, o.Constraints, o.SuccessMetrics,
		o.KPIs, o.KickoffDate, o.EstimatedDevTime, o.TeamMembers,
		o.ClientReviewDate, o.ProjectType, o.Deliverables,
	}
}

type MoodItem struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type MoodBoardData struct {
	InspirationImages []MoodItem `json:"inspirationImages"`
	WebsiteReferences []MoodItem `json:"websiteReferences"`
	Notes             string     `json:"notes"`
}

type CustomColor struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TypographyEntry is the canonical typography row every stored shape
// normalizes into.
type TypographyEntry struct {
	Label       string `json:"label"`
	FontFamily  string `json:"fontFamily"`
	Color       string `json:"color"`
	PreviewText string `json:"previewText"`
	Description string `json:"description,omitempty"`
	FontSize    string `json:"fontSize,omitempty"`
	FontWeight  string `json:"fontWeight,omitempty"`
	LineHeight  string `json:"lineHeight,omitempty"`
}

// ButtonStyle keeps whatever properties the editor stored for one button.
type ButtonStyle map[string]any

type StyleGuideData struct {
	Colors       map[string]string      `json:"colors"`
	CustomColors []CustomColor          `json:"customColors"`
	Typography   []TypographyEntry      `json:"typography"`
	ButtonStyles map[string]ButtonStyle `json:"buttonStyles"`
}

type SitemapBlock struct {
	ID          string `json:"id"`
	BlockID     string `json:"blockId"`
	Label       string `json:"label"`
	Description string `json:"description"`
	IsCustom    bool   `json:"isCustom,omitempty"`
}

type SitemapPage struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Blocks   []SitemapBlock `json:"blocks"`
	Children []SitemapPage  `json:"children"`
	Expanded bool           `json:"expanded,omitempty"`
}

type CustomBlock struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Label       string `json:"label"`
	Description string `json:"description"`
	IsCustom    bool   `json:"isCustom"`
}

type SitemapData struct {
	Pages        []SitemapPage `json:"pages"`
	CustomBlocks []CustomBlock `json:"customBlocks"`
}

type TechnicalData struct {
	CurrentHosting          string `json:"currentHosting"`
	HostingNotes            string `json:"hostingNotes"`
	ProposedHosting         string `json:"proposedHosting"`
	CMS                     string `json:"cms"`
	ContentUpdateFrequency  string `json:"contentUpdateFrequency"`
	ContentManagers         string `json:"contentManagers"`
	EditableContent         string `json:"editableContent"`
	ThirdPartyIntegrations  string `json:"thirdPartyIntegrations"`
	TechnicalRequirements   string `json:"technicalRequirements"`
	PerformanceRequirements string `json:"performanceRequirements"`
	BrowserSupport          string `json:"browserSupport"`
	SEORequirements         string `json:"seoRequirements"`
}

type ContentItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type ContentAsset struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Type  string `json:"type"`
	Data  string `json:"data,omitempty"`
	Label string `json:"label,omitempty"`
}

type BrandMessaging struct {
	MissionStatement string   `json:"missionStatement"`
	VisionStatement  string   `json:"visionStatement"`
	ValueProposition string   `json:"valueProposition"`
	BrandPromise     string   `json:"brandPromise"`
	Tagline          string   `json:"tagline"`
	BrandVoice       string   `json:"brandVoice"`
	KeyMessages      []string `json:"keyMessages"`
}

type MessagingPillar struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContentGuideline struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Guideline string `json:"guideline"`
}

// ContentData holds no scalar numbers or booleans outside containers so the
// deep content check only reacts to entered values.
type ContentData struct {
	ContentItems       []ContentItem      `json:"contentItems"`
	Assets             []ContentAsset     `json:"assets"`
	ToneNotes          string             `json:"toneNotes"`
	BrandMessaging     BrandMessaging     `json:"brandMessaging"`
	MessagingPillars   []MessagingPillar  `json:"messagingPillars"`
	ContentGuidelines  []ContentGuideline `json:"contentGuidelines"`
	SEOKeywords        []string           `json:"seoKeywords"`
	MetaTitle          string             `json:"metaTitle"`
	MetaDescription    string             `json:"metaDescription"`
	FocusKeyword       string             `json:"focusKeyword"`
	KeywordDifficulty  map[string]string  `json:"keywordDifficulty"`
	CompetitorAnalysis string             `json:"competitorAnalysis"`
}

type UploadedAsset struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Data     string `json:"data"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
}

type AssetsData struct {
	UploadedAssets []UploadedAsset `json:"uploadedAssets"`
}

const UncategorizedTab = "Uncategorized"

// Tabs groups uploaded assets by category, keeping upload order inside each.
func (a AssetsData) Tabs() map[string][]UploadedAsset {
	out := make(map[string][]UploadedAsset)
	for _, asset := range a.UploadedAssets {
		category := asset.Category
		if category == "" {
			category = UncategorizedTab
		}
		out[category] = append(out[category], asset)
	}
	return out
}

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// Data is every normalized section of one project.
type Data struct {
	Overview   OverviewData   `json:"overview"`
	MoodBoard  MoodBoardData  `json:"moodBoard"`
	StyleGuide StyleGuideData `json:"styleGuide"`
	Sitemap    SitemapData    `json:"sitemap"`
	Technical  TechnicalData  `json:"technical"`
	Content    ContentData    `json:"content"`
	Assets     AssetsData     `json:"assets"`
	Tasks      []Task         `json:"tasks"`
}
