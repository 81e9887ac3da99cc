package services

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos/testutil"
)

func TestProgressCardRendersPNG(t *testing.T) {
	h := newHarness(t)
	owner := asUser(uuid.New())
	p, err := h.projects.Create(owner, "A fairly long project title that has to wrap onto a second line", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	svc, err := NewProgressCardService(testutil.Logger(t), h.set.Project, h.engine)
	if err != nil {
		t.Fatalf("NewProgressCardService: %v", err)
	}
	out, err := svc.Render(owner, p.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != cardWidth || b.Dy() != cardHeight {
		t.Fatalf("size: want=%dx%d got=%dx%d", cardWidth, cardHeight, b.Dx(), b.Dy())
	}
}
