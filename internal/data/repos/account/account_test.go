package account

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos/testutil"
	types "github.com/troovstudio/troov-backend/internal/domain/account"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
)

func TestSubscriptionRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewSubscriptionRepo(db, testutil.Logger(t))

	userID := uuid.New()
	if sub, err := repo.GetByUserID(dbc, userID); err != nil || sub != nil {
		t.Fatalf("GetByUserID empty: sub=%+v err=%v", sub, err)
	}
	testutil.SeedSubscription(t, ctx, db, userID, "cus_123")
	sub, err := repo.GetByUserID(dbc, userID)
	if err != nil || sub == nil || sub.StripeCustomerID == nil || *sub.StripeCustomerID != "cus_123" {
		t.Fatalf("GetByUserID: sub=%+v err=%v", sub, err)
	}

	if err := repo.Upsert(dbc, &types.UserSubscription{UserID: userID, Plan: "team", Status: "active", StripeCustomerID: testutil.Ptr("cus_456")}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	sub, _ = repo.GetByUserID(dbc, userID)
	if sub.Plan != "team" || *sub.StripeCustomerID != "cus_456" {
		t.Fatalf("after upsert: %+v", sub)
	}
}

func TestSupportTicketRepoCreate(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewSupportTicketRepo(db, testutil.Logger(t))

	ticket := &types.SupportTicket{UserID: uuid.New(), Email: "a@b.c", Subject: "Help", Message: "Broken export"}
	if err := repo.Create(dbc, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	var got types.SupportTicket
	if err := db.First(&got, "id = ?", ticket.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != "open" {
		t.Fatalf("status: want=open got=%s", got.Status)
	}
}
