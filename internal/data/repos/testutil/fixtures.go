package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/troovstudio/troov-backend/internal/domain/account"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
)

func SeedProject(tb testing.TB, ctx context.Context, db *gorm.DB, userID uuid.UUID, title string, deadline *time.Time) *types.Project {
	tb.Helper()
	p := &types.Project{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		Deadline: deadline,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedTask(tb testing.TB, ctx context.Context, db *gorm.DB, projectID uuid.UUID, title string, completed bool, order int) *types.Task {
	tb.Helper()
	t := &types.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     title,
		Completed: completed,
		SortOrder: order,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}

func SeedSubscription(tb testing.TB, ctx context.Context, db *gorm.DB, userID uuid.UUID, customerID string) *account.UserSubscription {
	tb.Helper()
	s := &account.UserSubscription{
		ID:     uuid.New(),
		UserID: userID,
		Plan:   "pro",
		Status: "active",
	}
	if customerID != "" {
		s.StripeCustomerID = &customerID
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subscription: %v", err)
	}
	return s
}

func Ptr[T any](v T) *T { return &v }
