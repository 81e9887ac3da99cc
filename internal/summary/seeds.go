package summary

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/troovstudio/troov-backend/internal/domain/project"
)

//go:embed seeds.yaml
var seedsFS embed.FS

type seedTypography struct {
	Label       string `yaml:"label"`
	FontFamily  string `yaml:"font_family"`
	Color       string `yaml:"color"`
	PreviewText string `yaml:"preview_text"`
}

type seedButton struct {
	FontFamily      string `yaml:"font_family"`
	BackgroundColor string `yaml:"background_color"`
	TextColor       string `yaml:"text_color"`
	BorderColor     string `yaml:"border_color"`
	BorderWidth     int    `yaml:"border_width"`
}

type seedPage struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// SectionInfo is the display metadata for one section.
type SectionInfo struct {
	ID    project.Section `yaml:"id"`
	Title string          `yaml:"title"`
	Blurb string          `yaml:"blurb"`
}

// SeedCatalog is the versioned set of template values sections start with.
type SeedCatalog struct {
	Version  int `yaml:"version"`
	Overview struct {
		PriorityLevel string `yaml:"priority_level"`
	} `yaml:"overview"`
	Typography []seedTypography `yaml:"typography"`
	Buttons    struct {
		Primary   seedButton `yaml:"primary"`
		Secondary seedButton `yaml:"secondary"`
	} `yaml:"buttons"`
	Sitemap struct {
		Home seedPage `yaml:"home"`
	} `yaml:"sitemap"`
	Sections []SectionInfo `yaml:"sections"`
}

var (
	seedsOnce sync.Once
	seeds     *SeedCatalog
)

// Seeds returns the embedded catalog. A malformed catalog is a build defect
// and panics on first use.
func Seeds() *SeedCatalog {
	seedsOnce.Do(func() {
		raw, err := seedsFS.ReadFile("seeds.yaml")
		if err != nil {
			panic(fmt.Sprintf("summary: read seeds: %v", err))
		}
		var c SeedCatalog
		if err := yaml.Unmarshal(raw, &c); err != nil {
			panic(fmt.Sprintf("summary: parse seeds: %v", err))
		}
		if err := c.validate(); err != nil {
			panic(fmt.Sprintf("summary: invalid seeds: %v", err))
		}
		seeds = &c
	})
	return seeds
}

func (c *SeedCatalog) validate() error {
	if c.Overview.PriorityLevel == "" {
		return fmt.Errorf("overview priority missing")
	}
	if len(c.Typography) == 0 {
		return fmt.Errorf("typography missing")
	}
	if c.Sitemap.Home.Name == "" {
		return fmt.Errorf("sitemap home page missing")
	}
	if len(c.Sections) != len(project.AllSections) {
		return fmt.Errorf("sections: want %d entries, got %d", len(project.AllSections), len(c.Sections))
	}
	for i, s := range project.AllSections {
		if c.Sections[i].ID != s {
			return fmt.Errorf("sections[%d]: want %q, got %q", i, s, c.Sections[i].ID)
		}
	}
	return nil
}

func (c *SeedCatalog) DefaultPriority() string { return c.Overview.PriorityLevel }

func (c *SeedCatalog) DefaultTypography() []TypographyEntry {
	out := make([]TypographyEntry, 0, len(c.Typography))
	for _, t := range c.Typography {
		out = append(out, TypographyEntry{
			Label:       t.Label,
			FontFamily:  t.FontFamily,
			Color:       t.Color,
			PreviewText: t.PreviewText,
		})
	}
	return out
}

// DefaultButtonStyles uses the property names the style guide editor stores.
func (c *SeedCatalog) DefaultButtonStyles() map[string]ButtonStyle {
	p, s := c.Buttons.Primary, c.Buttons.Secondary
	return map[string]ButtonStyle{
		"primary": {
			"fontFamily":      p.FontFamily,
			"backgroundColor": p.BackgroundColor,
			"textColor":       p.TextColor,
		},
		"secondary": {
			"fontFamily":      s.FontFamily,
			"backgroundColor": s.BackgroundColor,
			"borderColor":     s.BorderColor,
			"borderWidth":     float64(s.BorderWidth),
		},
	}
}

func (c *SeedCatalog) DefaultPages() []SitemapPage {
	h := c.Sitemap.Home
	return []SitemapPage{{
		ID:       h.ID,
		Name:     h.Name,
		Path:     h.Path,
		Blocks:   []SitemapBlock{},
		Children: []SitemapPage{},
	}}
}

func (c *SeedCatalog) Section(s project.Section) (SectionInfo, bool) {
	for _, info := range c.Sections {
		if info.ID == s {
			return info, true
		}
	}
	return SectionInfo{}, false
}
