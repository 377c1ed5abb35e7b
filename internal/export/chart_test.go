package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/PlankLay/internal/model"
)

func TestRenderUsageChart(t *testing.T) {
	plan, result := buildTestResult(t)

	var buf bytes.Buffer
	if err := RenderUsageChart(&buf, plan, result); err != nil {
		t.Fatalf("RenderUsageChart returned error: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "echarts") {
		t.Error("expected echarts script in output")
	}
	if !strings.Contains(html, "Test room") {
		t.Error("expected plan name as chart title")
	}
}

func TestRenderUsageChart_NoLayouts(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderUsageChart(&buf, model.Plan{}, model.PlanResult{}); err == nil {
		t.Fatal("expected error for result without layouts")
	}
}

func TestExportChart(t *testing.T) {
	plan, result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "usage.html")
	if err := ExportChart(path, plan, result); err != nil {
		t.Fatalf("ExportChart returned error: %v", err)
	}
}
