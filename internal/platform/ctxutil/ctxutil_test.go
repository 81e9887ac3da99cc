package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestLogFieldsSkipsEmptyIDs(t *testing.T) {
	if got := LogFields(context.Background()); got != nil {
		t.Fatalf("no trace data: want=nil got=%v", got)
	}
	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "r-1"})
	got := LogFields(ctx)
	if len(got) != 2 || got[0] != "request_id" || got[1] != "r-1" {
		t.Fatalf("unexpected fields: %v", got)
	}
}

func TestUserIDWithoutRequestData(t *testing.T) {
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("want=nil uuid got=%s", got)
	}
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := UserID(ctx); got != id {
		t.Fatalf("want=%s got=%s", id, got)
	}
}
