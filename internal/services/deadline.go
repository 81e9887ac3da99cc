package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/domain/notify"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

const dateLayout = "2006-01-02"

type milestone struct {
	Kind  string
	Title string
	Body  string
}

// deadlineMilestone returns the reminder for a project whose deadline is
// days away, or false when the day is not a reminder day.
func deadlineMilestone(title string, days int) (milestone, bool) {
	if strings.TrimSpace(title) == "" {
		title = "Project"
	}
	switch {
	case days == 7:
		return milestone{Kind: "7d", Title: "Deadline in 7 days", Body: title + " is due in 7 days"}, true
	case days == 3:
		return milestone{Kind: "3d", Title: "Deadline in 3 days", Body: title + " is due in 3 days"}, true
	case days == 1:
		return milestone{Kind: "1d", Title: "Deadline tomorrow", Body: title + " is due tomorrow"}, true
	case days < 0:
		ago := -days
		unit := "days"
		if ago == 1 {
			unit = "day"
		}
		return milestone{Kind: "overdue", Title: "Deadline passed", Body: fmt.Sprintf("%s was due %d %s ago", title, ago, unit)}, true
	}
	return milestone{}, false
}

// daysUntil counts whole UTC calendar days from now to deadline.
func daysUntil(deadline, now time.Time) int {
	day := func(t time.Time) time.Time {
		u := t.UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(day(deadline).Sub(day(now)).Hours() / 24)
}

type DeadlineService interface {
	// Run sends due reminders for every project with a deadline and returns
	// how many notifications were created.
	Run(dbc dbctx.Context, now time.Time) (int, error)
}

type deadlineService struct {
	log           *logger.Logger
	projects      repos.ProjectRepo
	logs          repos.DeadlineLogRepo
	notifications NotificationService
}

func NewDeadlineService(log *logger.Logger, projects repos.ProjectRepo, logs repos.DeadlineLogRepo, notifications NotificationService) DeadlineService {
	return &deadlineService{
		log:           log.With("service", "DeadlineService"),
		projects:      projects,
		logs:          logs,
		notifications: notifications,
	}
}

func (s *deadlineService) Run(dbc dbctx.Context, now time.Time) (int, error) {
	projects, err := s.projects.ListWithDeadline(dbc)
	if err != nil {
		return 0, apierr.FromStore("list projects with deadline", err)
	}
	created := 0
	for _, p := range projects {
		if err := dbc.Ctx.Err(); err != nil {
			return created, err
		}
		if p.Deadline == nil {
			continue
		}
		m, ok := deadlineMilestone(p.Title, daysUntil(*p.Deadline, now))
		if !ok {
			continue
		}
		if s.send(dbc, p, m) {
			created++
		}
	}
	s.log.Info("deadline check finished", "projects", len(projects), "created", created)
	return created, nil
}

func (s *deadlineService) send(dbc dbctx.Context, p *types.Project, m milestone) bool {
	entry := &notify.DeadlineNotificationLog{
		ProjectID:    p.ID,
		Kind:         m.Kind,
		DeadlineDate: p.Deadline.UTC().Format(dateLayout),
	}
	if err := s.logs.Insert(dbc, entry); err != nil {
		if !apierr.IsUniqueViolation(err) {
			s.log.Error("deadline log insert failed", "project_id", p.ID, "kind", m.Kind, "error", err)
		}
		return false
	}
	projectID := p.ID
	n := &notify.Notification{
		UserID:    p.UserID,
		ProjectID: &projectID,
		Type:      notify.TypeDeadline,
		Title:     m.Title,
		Body:      m.Body,
		URL:       "/dashboard?project=" + p.ID.String() + "&view=overview",
	}
	if err := s.notifications.Notify(dbc, n); err != nil {
		s.log.Error("deadline notification insert failed", "project_id", p.ID, "kind", m.Kind, "error", err)
		return false
	}
	observability.M().DeadlineNotification(m.Kind)
	return true
}
