package completion

import (
	"github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/summary"
)

const readyTitle = "Ready to Develop"

// Step is the section a user should work on next.
type Step struct {
	Section project.Section `json:"section,omitempty"`
	Title   string          `json:"title"`
	Blurb   string          `json:"blurb,omitempty"`
	Done    bool            `json:"done"`
}

// NextStep returns the first incomplete section in canonical order, or a
// done step when nothing is left.
func NextStep(m Map) Step {
	catalog := summary.Seeds()
	for _, s := range project.AllSections {
		if m[s] {
			continue
		}
		info, _ := catalog.Section(s)
		return Step{Section: s, Title: info.Title, Blurb: info.Blurb}
	}
	return Step{Title: readyTitle, Done: true}
}
