package project

import "strings"

// Section identifies one of the fixed planning sections of a project.
type Section string

const (
	SectionOverview   Section = "overview"
	SectionMood       Section = "mood"
	SectionStyleGuide Section = "styleguide"
	SectionWireframe  Section = "wireframe"
	SectionTechnical  Section = "technical"
	SectionContent    Section = "content"
	SectionAssets     Section = "assets"
	SectionTasks      Section = "tasks"
)

// AllSections is the canonical order used for progress and next-step guidance.
var AllSections = []Section{
	SectionOverview,
	SectionMood,
	SectionStyleGuide,
	SectionWireframe,
	SectionTechnical,
	SectionContent,
	SectionAssets,
	SectionTasks,
}

func ParseSection(raw string) (Section, bool) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	if s == "sitemap" {
		return SectionWireframe, true
	}
	for _, known := range AllSections {
		if s == known {
			return s, true
		}
	}
	return "", false
}

func (s Section) String() string { return string(s) }
