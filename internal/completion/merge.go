package completion

import (
	"math"

	"github.com/troovstudio/troov-backend/internal/domain/project"
)

// Map holds the completion flag of every section.
type Map map[project.Section]bool

// Merge combines content-derived flags with the task rule and manual
// overrides. Tasks ignore overrides; every other section is complete when it
// has content or an override marks it complete.
func Merge(content map[project.Section]bool, tasksComplete bool, overrides map[project.Section]bool) Map {
	out := make(Map, len(project.AllSections))
	for _, s := range project.AllSections {
		if s == project.SectionTasks {
			out[s] = tasksComplete
			continue
		}
		out[s] = overrides[s] || content[s]
	}
	return out
}

func (m Map) Count() int {
	n := 0
	for _, s := range project.AllSections {
		if m[s] {
			n++
		}
	}
	return n
}

// Percentage is the share of complete sections, rounded half up.
func (m Map) Percentage() int {
	total := len(project.AllSections)
	return int(math.Floor(float64(100*m.Count())/float64(total) + 0.5))
}

func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
