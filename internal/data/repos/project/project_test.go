package project

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos/testutil"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
)

func TestProjectRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewProjectRepo(db, testutil.Logger(t))

	userID := uuid.New()
	deadline := time.Now().Add(72 * time.Hour).UTC()
	p1 := testutil.SeedProject(t, ctx, db, userID, "first", nil)
	p2 := testutil.SeedProject(t, ctx, db, userID, "second", &deadline)
	testutil.SeedProject(t, ctx, db, uuid.New(), "other user", nil)

	got, err := repo.GetByID(dbc, p1.ID)
	if err != nil || got == nil || got.Title != "first" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	if missing, err := repo.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID missing: got=%+v err=%v", missing, err)
	}

	list, err := repo.ListByUser(dbc, userID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByUser: len=%d err=%v", len(list), err)
	}

	withDeadline, err := repo.ListWithDeadline(dbc)
	if err != nil || len(withDeadline) != 1 || withDeadline[0].ID != p2.ID {
		t.Fatalf("ListWithDeadline: got=%v err=%v", withDeadline, err)
	}

	if err := repo.UpdateFields(dbc, p1.ID, map[string]interface{}{"title": "renamed"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, p1.ID); got.Title != "renamed" {
		t.Fatalf("title: want=renamed got=%s", got.Title)
	}

	testutil.SeedTask(t, ctx, db, p1.ID, "task", false, 0)
	if err := repo.DeleteCascade(dbc, p1.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	var remaining int64
	db.Model(&types.Task{}).Where("project_id = ?", p1.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("tasks after cascade: want=0 got=%d", remaining)
	}
	if got, _ := repo.GetByID(dbc, p1.ID); got != nil {
		t.Fatalf("project still present after cascade")
	}
}

func TestSectionRepoUpsertAndInsertIfMissing(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewSectionRepo[types.MoodBoard](db, testutil.Logger(t))

	if repo.Table() != "mood_board" {
		t.Fatalf("table: want=mood_board got=%s", repo.Table())
	}

	projectID := uuid.New()
	if row, err := repo.Get(dbc, projectID); err != nil || row != nil {
		t.Fatalf("Get empty: row=%+v err=%v", row, err)
	}

	inserted, err := repo.InsertIfMissing(dbc, &types.MoodBoard{ProjectID: projectID})
	if err != nil || !inserted {
		t.Fatalf("InsertIfMissing first: inserted=%v err=%v", inserted, err)
	}
	inserted, err = repo.InsertIfMissing(dbc, &types.MoodBoard{ProjectID: projectID})
	if err != nil || inserted {
		t.Fatalf("InsertIfMissing second: inserted=%v err=%v", inserted, err)
	}

	if err := repo.Upsert(dbc, &types.MoodBoard{ProjectID: projectID, StyleNotes: testutil.Ptr("warm tones")}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	row, err := repo.Get(dbc, projectID)
	if err != nil || row == nil || row.StyleNotes == nil || *row.StyleNotes != "warm tones" {
		t.Fatalf("Get after upsert: row=%+v err=%v", row, err)
	}
	var count int64
	db.Model(&types.MoodBoard{}).Where("project_id = ?", projectID).Count(&count)
	if count != 1 {
		t.Fatalf("rows: want=1 got=%d", count)
	}
}

func TestTaskRepoOrdering(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewTaskRepo(db, testutil.Logger(t))
	projectID := uuid.New()

	if max, err := repo.MaxSortOrder(dbc, projectID); err != nil || max != -1 {
		t.Fatalf("MaxSortOrder empty: want=-1 got=%d err=%v", max, err)
	}

	a := testutil.SeedTask(t, ctx, db, projectID, "a", false, 0)
	b := testutil.SeedTask(t, ctx, db, projectID, "b", false, 1)
	c := testutil.SeedTask(t, ctx, db, projectID, "c", true, 2)

	if max, err := repo.MaxSortOrder(dbc, projectID); err != nil || max != 2 {
		t.Fatalf("MaxSortOrder: want=2 got=%d err=%v", max, err)
	}

	if err := repo.Reorder(dbc, projectID, []uuid.UUID{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	list, err := repo.ListByProject(dbc, projectID)
	if err != nil || len(list) != 3 {
		t.Fatalf("ListByProject: len=%d err=%v", len(list), err)
	}
	if list[0].ID != c.ID || list[1].ID != a.ID || list[2].ID != b.ID {
		t.Fatalf("order: got=%s,%s,%s", list[0].Title, list[1].Title, list[2].Title)
	}

	ok, err := repo.UpdateFields(dbc, projectID, a.ID, map[string]interface{}{"completed": true})
	if err != nil || !ok {
		t.Fatalf("UpdateFields: ok=%v err=%v", ok, err)
	}
	if got, _ := repo.GetByID(dbc, projectID, a.ID); got == nil || !got.Completed {
		t.Fatalf("task a not completed: %+v", got)
	}
	if ok, _ := repo.UpdateFields(dbc, uuid.New(), a.ID, map[string]interface{}{"completed": false}); ok {
		t.Fatalf("UpdateFields across projects should not match")
	}

	if ok, err := repo.Delete(dbc, projectID, b.ID); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if ok, _ := repo.Delete(dbc, projectID, b.ID); ok {
		t.Fatalf("second Delete should report no row")
	}
}

func TestOverrideRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewOverrideRepo(db, testutil.Logger(t))
	projectID := uuid.New()

	if err := repo.Upsert(dbc, projectID, types.SectionOverview, true); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, projectID, types.SectionOverview, false); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if err := repo.Upsert(dbc, projectID, types.SectionAssets, true); err != nil {
		t.Fatalf("Upsert assets: %v", err)
	}

	rows, err := repo.ListByProject(dbc, projectID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByProject: len=%d err=%v", len(rows), err)
	}
	for _, row := range rows {
		switch row.Section {
		case string(types.SectionOverview):
			if row.IsComplete {
				t.Fatalf("overview override: want=false got=true")
			}
		case string(types.SectionAssets):
			if !row.IsComplete {
				t.Fatalf("assets override: want=true got=false")
			}
		default:
			t.Fatalf("unexpected section %q", row.Section)
		}
	}
}

func TestMoodBoardItemRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewMoodBoardItemRepo(db, testutil.Logger(t))
	projectID := uuid.New()

	item := &types.MoodBoardItem{ProjectID: projectID, Type: types.MoodItemImage, URL: "https://cdn/x.png"}
	if err := repo.Create(dbc, item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ok, err := repo.UpdateFields(dbc, projectID, item.ID, map[string]interface{}{"notes": "hero"}); err != nil || !ok {
		t.Fatalf("UpdateFields: ok=%v err=%v", ok, err)
	}
	items, err := repo.ListByProject(dbc, projectID)
	if err != nil || len(items) != 1 || items[0].Notes != "hero" {
		t.Fatalf("ListByProject: items=%v err=%v", items, err)
	}
	if ok, err := repo.Delete(dbc, projectID, item.ID); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
}
