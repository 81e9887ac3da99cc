package summary

import (
	"testing"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/domain/project"
)

func TestSeedCatalog(t *testing.T) {
	c := Seeds()
	if c.Version < 1 {
		t.Fatalf("version: got=%d", c.Version)
	}
	if c.DefaultPriority() != "Medium" {
		t.Fatalf("priority: want=Medium got=%q", c.DefaultPriority())
	}
	typo := c.DefaultTypography()
	if len(typo) != 7 || typo[0].Label != "H1" || typo[6].Label != "Paragraph" {
		t.Fatalf("typography: got=%+v", typo)
	}
	if typo[3].PreviewText != "This is a H4 heading example" {
		t.Fatalf("preview text: got=%q", typo[3].PreviewText)
	}
	pages := c.DefaultPages()
	if len(pages) != 1 || pages[0].Name != "Home" || pages[0].Path != "/" {
		t.Fatalf("pages: got=%+v", pages)
	}
	info, ok := c.Section(project.SectionWireframe)
	if !ok || info.Title != "Sitemap" || info.Blurb != "site structure and navigation" {
		t.Fatalf("wireframe info: got=%+v ok=%v", info, ok)
	}
}

func TestSeedRowsNormalizeToDefaults(t *testing.T) {
	ov, err := OverviewRow(uuid.New(), DefaultOverview())
	if err != nil {
		t.Fatalf("OverviewRow: %v", err)
	}
	if !IsDefaultOverview(NormalizeOverview(ov)) {
		t.Fatalf("seeded overview row should read back as default")
	}

	sg, err := StyleGuideRow(uuid.New(), DefaultStyleGuide())
	if err != nil {
		t.Fatalf("StyleGuideRow: %v", err)
	}
	if !IsDefaultStyleGuide(NormalizeStyleGuide(sg)) {
		t.Fatalf("seeded style guide row should read back as default")
	}

	sm, err := SitemapRow(uuid.New(), DefaultSitemap())
	if err != nil {
		t.Fatalf("SitemapRow: %v", err)
	}
	if !IsDefaultSitemap(NormalizeSitemap(sm).Pages) {
		t.Fatalf("seeded sitemap row should read back as default")
	}

	edited := DefaultOverview()
	edited.Client = "Acme"
	ov, _ = OverviewRow(uuid.New(), edited)
	if got := NormalizeOverview(ov); got.Client != "Acme" || !HasOverviewContent(got) {
		t.Fatalf("edited overview: got=%+v", got)
	}
}

func TestOverviewRowKeepsSeededPriorityWhenOmitted(t *testing.T) {
	in := DefaultOverview()
	in.PriorityLevel = ""
	ov, err := OverviewRow(uuid.New(), in)
	if err != nil {
		t.Fatalf("OverviewRow: %v", err)
	}
	if ov.PriorityLevel == nil || *ov.PriorityLevel != Seeds().DefaultPriority() {
		t.Fatalf("priority: want=%q got=%v", Seeds().DefaultPriority(), ov.PriorityLevel)
	}
	if !IsDefaultOverview(NormalizeOverview(ov)) {
		t.Fatalf("overview without priority should read back as default")
	}
}
