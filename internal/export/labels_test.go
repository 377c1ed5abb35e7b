package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlankLay/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	_, result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, result); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")
	result := model.PlanResult{Layouts: []model.Layout{{Region: "empty"}}}
	if err := ExportLabels(path, result); err == nil {
		t.Fatal("expected error for result with no placements, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	_, result := buildTestResult(t)
	labels := CollectLabelInfos(result)

	if len(labels) != result.BoardsPlaced() {
		t.Fatalf("expected %d labels, got %d", result.BoardsPlaced(), len(labels))
	}

	first := labels[0]
	if first.Region != "floor" || first.Row != 1 || first.Index != 1 {
		t.Errorf("unexpected first label %+v", first)
	}
	if first.Serial != 1 || first.Length != 550 {
		t.Errorf("first label should be the shortened first board, got %+v", first)
	}
	if first.Sawn != "L" {
		t.Errorf("first row board should only have a sawn left edge, got %q", first.Sawn)
	}
	if first.Title() != "floor R1/1" {
		t.Errorf("unexpected title %q", first.Title())
	}
}

func TestLabelInfo_QRPayload(t *testing.T) {
	info := LabelInfo{Region: "hall", Row: 2, Index: 3, Serial: 7, Generation: 1, Length: 830, Width: 625, Sawn: "H"}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"region", "row", "index", "serial", "generation", "length_mm", "width_mm", "sawn"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("QR payload missing %q", key)
		}
	}
}
