package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos/testutil"
	types "github.com/troovstudio/troov-backend/internal/domain/notify"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
)

func TestNotificationRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewNotificationRepo(db, testutil.Logger(t))
	userID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		n := &types.Notification{UserID: userID, Type: types.TypeDeadline, Title: "t"}
		if err := repo.Create(dbc, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, n.ID)
	}
	if err := repo.Create(dbc, &types.Notification{UserID: uuid.New(), Type: "x", Title: "other"}); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	list, err := repo.ListLatest(dbc, userID, 2)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListLatest: len=%d err=%v", len(list), err)
	}

	now := time.Now().UTC()
	ok, err := repo.MarkRead(dbc, userID, ids[0], now)
	if err != nil || !ok {
		t.Fatalf("MarkRead: ok=%v err=%v", ok, err)
	}
	if ok, _ := repo.MarkRead(dbc, uuid.New(), ids[1], now); ok {
		t.Fatalf("MarkRead for another user should not match")
	}

	n, err := repo.MarkAllRead(dbc, userID, now)
	if err != nil || n != 2 {
		t.Fatalf("MarkAllRead: want=2 got=%d err=%v", n, err)
	}
	cleared, err := repo.ClearRead(dbc, userID)
	if err != nil || cleared != 3 {
		t.Fatalf("ClearRead: want=3 got=%d err=%v", cleared, err)
	}
	if list, _ := repo.ListLatest(dbc, userID, 20); len(list) != 0 {
		t.Fatalf("after clear: want=0 got=%d", len(list))
	}
}

func TestDeadlineLogRepoRejectsDuplicates(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewDeadlineLogRepo(db, testutil.Logger(t))
	projectID := uuid.New()

	entry := func() *types.DeadlineNotificationLog {
		return &types.DeadlineNotificationLog{ProjectID: projectID, Kind: "3d", DeadlineDate: "2026-10-18"}
	}
	if err := repo.Insert(dbc, entry()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := repo.Insert(dbc, entry())
	if err == nil || !apierr.IsUniqueViolation(err) {
		t.Fatalf("second Insert: want unique violation got=%v", err)
	}
	other := entry()
	other.Kind = "1d"
	if err := repo.Insert(dbc, other); err != nil {
		t.Fatalf("Insert other kind: %v", err)
	}
}
