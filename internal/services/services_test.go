package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/autosave"
	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/data/repos/testutil"
	"github.com/troovstudio/troov-backend/internal/domain/notify"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/ctxutil"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/realtime"
	"github.com/troovstudio/troov-backend/internal/summary"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (p *recordingPublisher) Publish(_ context.Context, msg realtime.SSEMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) events(channel string) []realtime.SSEEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []realtime.SSEEvent
	for _, m := range p.msgs {
		if m.Channel == channel {
			out = append(out, m.Event)
		}
	}
	return out
}

type harness struct {
	db  *gorm.DB
	set repos.Set
	pub *recordingPublisher

	queue    *autosave.Queue
	engine   *completion.Engine
	registry *completion.Registry

	projects      ProjectService
	sections      SectionService
	tasks         TaskService
	moodBoard     MoodBoardService
	completion    CompletionService
	summaries     SummaryService
	notifications NotificationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := testutil.Logger(t)
	db := testutil.DB(t)
	set := repos.NewSet(db, log)
	h := &harness{db: db, set: set, pub: &recordingPublisher{}}

	var sections SectionService
	h.queue = autosave.New(log,
		autosave.WithDebounce(time.Hour),
		autosave.OnWritten(func(k autosave.Key) {
			if sections != nil {
				sections.Written(k)
			}
		}),
	)
	t.Cleanup(func() { _ = h.queue.Close(context.Background()) })

	h.engine = completion.NewEngine(summary.NewLoader(summary.NewRepoSource(set), log), completion.NewOverrideStore(set.Override), log)
	h.registry = completion.NewRegistry(h.engine, time.Minute, log)

	h.projects = NewProjectService(db, log, set.Project, h.queue, h.registry)
	h.completion = NewCompletionService(log, set.Project, h.registry, h.pub)
	sections = NewSectionService(log, set, h.queue, h.completion, h.pub)
	h.sections = sections
	h.tasks = NewTaskService(log, set.Project, set.Task, h.completion)
	h.moodBoard = NewMoodBoardService(log, set.Project, set.MoodBoardItem, h.completion)
	h.summaries = NewSummaryService(log, set.Project, h.engine)
	h.notifications = NewNotificationService(log, set.Notification, h.pub)
	return h
}

func asUser(userID uuid.UUID) dbctx.Context {
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID, Email: "owner@example.com"})
	return dbctx.Context{Ctx: ctx}
}

func newNotification(userID uuid.UUID, title string) *notify.Notification {
	return &notify.Notification{UserID: userID, Type: "info", Title: title}
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	ae, ok := apierr.As(err)
	if !ok {
		t.Fatalf("want api error with status %d, got %v", status, err)
	}
	if ae.Status != status {
		t.Fatalf("status: want=%d got=%d (%v)", status, ae.Status, err)
	}
}

func TestProjectsAreScopedToTheirOwner(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	other := asUser(uuid.New())

	p, err := h.projects.Create(owner, "  Landing page  ", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Title != "Landing page" {
		t.Fatalf("title: want=%q got=%q", "Landing page", p.Title)
	}

	_, err = h.projects.Get(other, p.ID)
	wantStatus(t, err, http.StatusNotFound)

	list, err := h.projects.List(other)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("other user projects: want=0 got=%d", len(list))
	}

	_, err = h.projects.Create(dbctx.Context{Ctx: context.Background()}, "x", nil)
	wantStatus(t, err, http.StatusUnauthorized)

	_, err = h.projects.Create(owner, "   ", nil)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestProjectUpdateTruncatesDeadline(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Shop", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	deadline := time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)
	got, err := h.projects.Update(owner, p.ID, ProjectUpdate{Deadline: &deadline})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Deadline == nil || !got.Deadline.UTC().Equal(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("deadline: want=2026-05-04 got=%v", got.Deadline)
	}
	got, err = h.projects.Update(owner, p.ID, ProjectUpdate{ClearDeadline: true})
	if err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if got.Deadline != nil {
		t.Fatalf("deadline: want=nil got=%v", got.Deadline)
	}
}

func TestSectionLoadSeedsAndFlushedSaveCompletes(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Portfolio", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := h.sections.Load(owner, p.ID, "overview")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	overview, ok := loaded.(summary.OverviewData)
	if !ok {
		t.Fatalf("Load: want OverviewData got %T", loaded)
	}
	if overview.PriorityLevel != summary.Seeds().DefaultPriority() {
		t.Fatalf("priority: want=%q got=%q", summary.Seeds().DefaultPriority(), overview.PriorityLevel)
	}

	res, err := h.completion.Get(owner, p.ID)
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if res.Completion["overview"] {
		t.Fatalf("seeded overview must not count as complete")
	}

	if _, err := h.sections.Save(owner, p.ID, "overview", []byte(`{"projectName":"Acme"}`), true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	res, err = h.completion.Get(owner, p.ID)
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !res.Completion["overview"] || res.Count != 2 || res.Percentage != 25 {
		t.Fatalf("after save: want overview complete at 25%%, got %+v", res)
	}

	saved := h.pub.events(realtime.ProjectChannel(p.ID))
	var sawSaved, sawCompletion bool
	for _, e := range saved {
		sawSaved = sawSaved || e == realtime.SSEEventSectionSaved
		sawCompletion = sawCompletion || e == realtime.SSEEventCompletionUpdated
	}
	if !sawSaved || !sawCompletion {
		t.Fatalf("events: want section_saved and completion_updated, got %v", saved)
	}
}

func TestSectionSaveDebouncesUntilLoad(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Blog", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := h.sections.Save(owner, p.ID, "technical", []byte(`{"currentHosting":"first"}`), false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := h.sections.Save(owner, p.ID, "technical", []byte(`{"currentHosting":"second"}`), false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if h.queue.Len() != 1 {
		t.Fatalf("pending writes: want=1 got=%d", h.queue.Len())
	}
	loaded, err := h.sections.Load(owner, p.ID, "technical")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.(summary.TechnicalData).CurrentHosting; got != "second" {
		t.Fatalf("hosting: want=%q got=%q", "second", got)
	}
	if h.queue.Len() != 0 {
		t.Fatalf("pending writes after load: want=0 got=%d", h.queue.Len())
	}
}

func TestMoodBoardSaveReturnsStoredItems(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Gallery", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := h.sections.Save(owner, p.ID, "mood", []byte(`{"notes":"warm tones"}`), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	mood := out.(summary.MoodBoardData)
	if mood.Notes != "warm tones" {
		t.Fatalf("notes: want=%q got=%q", "warm tones", mood.Notes)
	}
	if mood.InspirationImages == nil || mood.WebsiteReferences == nil {
		t.Fatalf("item lists must be empty, not nil: %+v", mood)
	}

	if _, err := h.moodBoard.AddItem(owner, p.ID, MoodBoardItemInput{Type: "website_reference", URL: "https://example.com"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	out, err = h.sections.Save(owner, p.ID, "mood", []byte(`{"notes":"cool tones","inspirationImages":null}`), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	mood = out.(summary.MoodBoardData)
	if len(mood.WebsiteReferences) != 1 || len(mood.InspirationImages) != 0 {
		t.Fatalf("items: got=%+v", mood)
	}
}

func TestSectionSaveRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Blog", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cases := []struct {
		name    string
		section string
		body    string
	}{
		{name: "tasks", section: "tasks", body: `[]`},
		{name: "empty body", section: "overview", body: ``},
		{name: "invalid json", section: "mood", body: `{`},
		{name: "unknown section", section: "pricing", body: `{}`},
	}
	for _, tc := range cases {
		_, err := h.sections.Save(owner, p.ID, types.Section(tc.section), []byte(tc.body), false)
		if ae, ok := apierr.As(err); !ok || ae.Status != http.StatusBadRequest {
			t.Fatalf("%s: want 400 got %v", tc.name, err)
		}
	}
}

func TestOverrideSurvivesRecompute(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "App", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	res, err := h.completion.SetOverride(owner, p.ID, "styleguide", true)
	if err != nil {
		t.Fatalf("SetOverride: %v", err)
	}
	if !res.Completion["styleguide"] {
		t.Fatalf("override not applied: %+v", res)
	}
	// A fresh registry sees the persisted override.
	h.registry.Forget(p.ID)
	res, err = h.completion.Get(owner, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !res.Completion["styleguide"] {
		t.Fatalf("override lost after recompute: %+v", res)
	}

	_, err = h.completion.SetOverride(asUser(uuid.New()), p.ID, "styleguide", false)
	wantStatus(t, err, http.StatusNotFound)
}

func TestTaskLifecycle(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Site", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	a, err := h.tasks.Create(owner, p.ID, "Wireframes")
	if err != nil {
		t.Fatalf("Create task: %v", err)
	}
	b, err := h.tasks.Create(owner, p.ID, "Copy")
	if err != nil {
		t.Fatalf("Create task: %v", err)
	}
	if b.Order <= a.Order {
		t.Fatalf("order: want %d > %d", b.Order, a.Order)
	}

	res, _ := h.completion.Get(owner, p.ID)
	if res.Completion["tasks"] {
		t.Fatalf("tasks: want incomplete with open tasks")
	}

	done := true
	for _, id := range []string{a.ID, b.ID} {
		if _, err := h.tasks.Update(owner, p.ID, uuid.MustParse(id), TaskUpdate{Completed: &done}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	res, _ = h.completion.Get(owner, p.ID)
	if !res.Completion["tasks"] {
		t.Fatalf("tasks: want complete once every task is done")
	}

	list, err := h.tasks.Reorder(owner, p.ID, []uuid.UUID{uuid.MustParse(b.ID), uuid.MustParse(a.ID)})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID {
		t.Fatalf("reorder: want %s first, got %+v", b.ID, list)
	}

	_, err = h.tasks.Reorder(owner, p.ID, []uuid.UUID{uuid.MustParse(a.ID), uuid.MustParse(a.ID)})
	wantStatus(t, err, http.StatusBadRequest)

	if err := h.tasks.Delete(owner, p.ID, uuid.MustParse(a.ID)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err = h.tasks.Delete(owner, p.ID, uuid.MustParse(a.ID))
	wantStatus(t, err, http.StatusNotFound)
}

func TestMoodBoardItemsCountTowardCompletion(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Brand", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = h.moodBoard.AddItem(owner, p.ID, MoodBoardItemInput{Type: "video", URL: "https://x"})
	wantStatus(t, err, http.StatusBadRequest)

	item, err := h.moodBoard.AddItem(owner, p.ID, MoodBoardItemInput{Type: "image", URL: "https://cdn.example.com/a.png"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	res, _ := h.completion.Get(owner, p.ID)
	if !res.Completion["mood"] {
		t.Fatalf("mood: want complete with an image item")
	}
	if err := h.moodBoard.DeleteItem(owner, p.ID, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	res, _ = h.completion.Get(owner, p.ID)
	if res.Completion["mood"] {
		t.Fatalf("mood: want incomplete after delete")
	}
}

func TestProjectDeleteDropsPendingWrites(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Gone", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := h.sections.Save(owner, p.ID, "content", []byte(`{}`), false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := h.projects.Delete(owner, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if h.queue.Len() != 0 {
		t.Fatalf("pending writes: want=0 got=%d", h.queue.Len())
	}
	_, err = h.projects.Get(owner, p.ID)
	wantStatus(t, err, http.StatusNotFound)
}

func TestSummaryExportUsesOverviewName(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Internal title", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := h.sections.Save(owner, p.ID, "overview", []byte(`{"projectName":"Acme Store"}`), true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := h.summaries.Export(owner, p.ID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.Filename != "troov-summary-Acme-Store.pdf" {
		t.Fatalf("filename: want=%q got=%q", "troov-summary-Acme-Store.pdf", out.Filename)
	}
	if !out.Visible["overview"] || out.Visible["tasks"] {
		t.Fatalf("visible: unexpected %+v", out.Visible)
	}
}

func TestNotificationsMarkAndClear(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	owner := asUser(userID)
	for _, title := range []string{"one", "two"} {
		if err := h.notifications.Notify(owner, newNotification(userID, title)); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}
	if got := h.pub.events(realtime.UserChannel(userID)); len(got) != 2 {
		t.Fatalf("pushed: want=2 got=%d", len(got))
	}
	list, err := h.notifications.List(owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list: want=2 got=%d", len(list))
	}
	if err := h.notifications.MarkRead(owner, list[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	wantStatus(t, h.notifications.MarkRead(asUser(uuid.New()), list[1].ID), http.StatusNotFound)

	cleared, err := h.notifications.ClearRead(owner)
	if err != nil || cleared != 1 {
		t.Fatalf("ClearRead: want=1 got=%d err=%v", cleared, err)
	}
	n, err := h.notifications.MarkAllRead(owner)
	if err != nil || n != 1 {
		t.Fatalf("MarkAllRead: want=1 got=%d err=%v", n, err)
	}
}

func TestCancelledContextStopsCompletion(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "Late", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ctx, cancel := context.WithCancel(owner.Ctx)
	cancel()
	_, err = h.registry.Get(p.ID).Recompute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled got %v", err)
	}
}
