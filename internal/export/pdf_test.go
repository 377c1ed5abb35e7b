package export

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlankLay/internal/engine"
	"github.com/piwi3910/PlankLay/internal/model"
)

// buildTestResult lays a small room with a doorway from an opened pack.
func buildTestResult(t *testing.T) (model.Plan, model.PlanResult) {
	t.Helper()
	room := model.Room{
		Width: 3000, Depth: 2000, WallThickness: 200,
		Doorway: &model.Doorway{Offset: 600, Width: 800},
	}
	profile, _ := model.FindSupplyProfile("Opened Pack", nil)
	plan := model.NewPlan("Test room", profile)
	plan.Room = &room
	plan.Regions = []model.Region{room.Region("floor", model.Horizontal, 100)}

	result, err := engine.Run(plan, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if result.BoardsPlaced() == 0 {
		t.Fatal("test layout placed no boards")
	}
	return plan, result
}

func TestExportPDF_CreatesFile(t *testing.T) {
	plan, result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, plan, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_NoLayouts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, model.Plan{}, model.PlanResult{}); err == nil {
		t.Fatal("expected error for result without layouts")
	}
}

func TestWritePDF_WithoutRoom(t *testing.T) {
	plan, result := buildTestResult(t)
	plan.Room = nil

	var buf bytes.Buffer
	if err := WritePDF(&buf, plan, result); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}

func TestDecorLines(t *testing.T) {
	b := model.NewBoard(2000, 600)
	b.CutFw(1500)
	p := model.NewPlacedBoard(model.Point2D{}, b, model.Horizontal)

	lines := DecorLines(p)
	if len(lines) != 3 {
		t.Fatalf("expected 3 decor lines for a board with a sawn tail, got %d", len(lines))
	}
	for _, l := range lines {
		if l.Edge == model.EdgeTail {
			t.Error("sawn tail must not get a decor line")
		}
		if l.Edge == model.EdgeHead {
			if !l.Dotted {
				t.Error("head line should be dotted")
			}
			if l.Segment.A.X != DecorInset {
				t.Errorf("head line should sit %v mm inside the edge, got x=%v", DecorInset, l.Segment.A.X)
			}
		}
		if l.Edge == model.EdgeRight && l.Dotted {
			t.Error("right line should be dashed")
		}
	}
}

func TestDecorLines_NarrowBoard(t *testing.T) {
	p := model.NewPlacedBoard(model.Point2D{}, &model.Board{Length: 2000, Width: 30}, model.Horizontal)
	if lines := DecorLines(p); lines != nil {
		t.Errorf("expected no decor on a 30 mm strip, got %d lines", len(lines))
	}
}
