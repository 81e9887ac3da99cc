package services

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/troovstudio/troov-backend/internal/completion"
	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/summary"
)

const (
	cardWidth  = 1200
	cardHeight = 630
)

var (
	cardBackground = color.NRGBA{R: 0xFA, G: 0xFA, B: 0xF7, A: 0xFF}
	cardInk        = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	cardMuted      = color.NRGBA{R: 0x8A, G: 0x8A, B: 0x85, A: 0xFF}
	cardTrack      = color.NRGBA{R: 0xE4, G: 0xE4, B: 0xDE, A: 0xFF}
	cardAccent     = color.NRGBA{R: 0x2F, G: 0x6F, B: 0x4E, A: 0xFF}
)

type ProgressCardService interface {
	Render(dbc dbctx.Context, projectID uuid.UUID) ([]byte, error)
}

type progressCardService struct {
	log      *logger.Logger
	projects repos.ProjectRepo
	engine   *completion.Engine

	titleFace font.Face
	bigFace   font.Face
	bodyFace  font.Face
}

func NewProgressCardService(log *logger.Logger, projects repos.ProjectRepo, engine *completion.Engine) (ProgressCardService, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	}
	return &progressCardService{
		log:       log.With("service", "ProgressCardService"),
		projects:  projects,
		engine:    engine,
		titleFace: face(bold, 52),
		bigFace:   face(bold, 64),
		bodyFace:  face(regular, 28),
	}, nil
}

func (s *progressCardService) Render(dbc dbctx.Context, projectID uuid.UUID) ([]byte, error) {
	p, err := ownedProject(dbc, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Compute(dbc.Ctx, projectID)
	if err != nil {
		return nil, apierr.FromStore("compute completion", err)
	}
	return s.draw(p.Title, res)
}

func (s *progressCardService) draw(title string, res completion.Result) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetColor(cardBackground)
	dc.Clear()

	// Title
	dc.SetFontFace(s.titleFace)
	dc.SetColor(cardInk)
	dc.DrawStringWrapped(title, 64, 64, 0, 0, 680, 1.2, gg.AlignLeft)

	// Percentage ring
	cx, cy, r := 940.0, 260.0, 150.0
	dc.SetLineWidth(26)
	dc.SetColor(cardTrack)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()
	if res.Percentage > 0 {
		start := -math.Pi / 2
		dc.SetColor(cardAccent)
		dc.DrawArc(cx, cy, r, start, start+2*math.Pi*float64(res.Percentage)/100)
		dc.Stroke()
	}
	dc.SetFontFace(s.bigFace)
	dc.SetColor(cardInk)
	dc.DrawStringAnchored(fmt.Sprintf("%d%%", res.Percentage), cx, cy, 0.5, 0.35)

	// Section ticks
	dc.SetFontFace(s.bodyFace)
	catalog := summary.Seeds()
	y := 220.0
	for _, section := range types.AllSections {
		label := string(section)
		if info, ok := catalog.Section(section); ok {
			label = info.Title
		}
		done := res.Completion[section]
		if done {
			dc.SetColor(cardAccent)
			dc.DrawCircle(80, y-9, 11)
			dc.Fill()
		} else {
			dc.SetColor(cardMuted)
			dc.SetLineWidth(3)
			dc.DrawCircle(80, y-9, 11)
			dc.Stroke()
		}
		dc.SetColor(cardInk)
		if !done {
			dc.SetColor(cardMuted)
		}
		dc.DrawString(label, 108, y)
		y += 44
	}

	// Next step
	dc.SetColor(cardInk)
	next := "Next: " + res.Next.Title
	if res.Next.Done {
		next = res.Next.Title
	}
	dc.DrawStringAnchored(next, cx, cy+r+70, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
