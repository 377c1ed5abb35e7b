package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Length,Width,Capacity\nOak,1800,190,20\nPine,2000,600,40\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Length;Width;Capacity\nOak;1800;190;20\nPine;2000;600;40\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tLength\tWidth\tCapacity\nOak\t1800\t190\t20\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|Length|Width|Capacity\nOak|1800|190|20\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "Length", "Width", "Capacity", "Shorten", "Price"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Length: 1, Width: 2, Capacity: 3, Shorten: 4, Price: 5, Description: -1}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", "board width", "Product", "LEN", "Notes"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Capacity != 0 || mapping.Width != 1 || mapping.Name != 2 || mapping.Length != 3 || mapping.Description != 4 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Shorten != -1 || mapping.Price != -1 {
		t.Errorf("optional columns should be unmapped, got %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Oak", "1800", "190", "20"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Name != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Capacity != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,Length,Width,Capacity,Shorten,Price,Description\n" +
		"Opened,2050,625,74,1500,12.5,Leftover pack\n" +
		"Oak,1800,190,20,,,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(result.Profiles))
	}
	p := result.Profiles[0]
	if p.Name != "Opened" || p.DefaultLength != 2050 || p.DefaultWidth != 625 || p.Capacity != 74 {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.FirstBoardShortenBy != 1500 || p.PricePerBoard != 12.5 || p.Description != "Leftover pack" {
		t.Errorf("optional fields not parsed: %+v", p)
	}
	if p.ID == "" || p.IsBuiltIn {
		t.Errorf("imported profile should get an id and not be built-in: %+v", p)
	}
	if result.Profiles[1].FirstBoardShortenBy != 0 {
		t.Errorf("expected no shortening, got %f", result.Profiles[1].FirstBoardShortenBy)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Oak,1800,190,20\nPine,2000,600,40\n"), ',')
	if len(result.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d (errors: %v)", len(result.Profiles), result.Errors)
	}
	if result.Profiles[1].Name != "Pine" {
		t.Errorf("expected Pine, got %s", result.Profiles[1].Name)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Art,Lang,Breit,Anzahl\nOak,1800,190,20\n"), ',')
	if len(result.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d (errors: %v)", len(result.Profiles), result.Errors)
	}
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name;Length;Width;Capacity\nOak;1800,5;190;20\n"), ';')
	if len(result.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d (errors: %v)", len(result.Profiles), result.Errors)
	}
	if result.Profiles[0].DefaultLength != 1800.5 {
		t.Errorf("expected 1800.5, got %f", result.Profiles[0].DefaultLength)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Name,Length,Width,Capacity\n" +
		"Good,1800,190,20\n" +
		"BadLength,abc,190,20\n" +
		"NoWidth,1800,,20\n" +
		"BadCapacity,1800,190,many\n" +
		"Negative,-5,190,20\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Profiles) != 1 {
		t.Errorf("expected 1 valid profile, got %d", len(result.Profiles))
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Line 3") {
		t.Errorf("expected error to name the line, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_ShortenTooLong(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Length,Width,Capacity,Shorten\nX,1000,100,5,1000\n"), ',')
	if len(result.Profiles) != 0 || len(result.Errors) != 1 {
		t.Errorf("expected shortening >= length to be rejected, got %+v", result)
	}
}

func TestImportCSVFromReader_InvalidOptionalFieldsWarn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Length,Width,Capacity,Price\nX,1000,100,5,cheap\n"), ',')
	if len(result.Profiles) != 1 {
		t.Fatalf("expected profile despite bad price, got errors %v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Invalid price") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected price warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Length,Price\nOak,1800,3\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Width, Capacity") {
		t.Errorf("expected missing column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRowsAndNames(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Length,Width,Capacity\n,1800,190,20\n,,,\n"), ',')
	if len(result.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d (errors: %v)", len(result.Profiles), result.Errors)
	}
	if result.Profiles[0].Name != "Profile 1" {
		t.Errorf("expected generated name, got %q", result.Profiles[0].Name)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.csv")
	if err := os.WriteFile(path, []byte("Name;Length;Width;Capacity\nOak;1800;190;20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path)
	if len(result.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d (errors: %v)", len(result.Profiles), result.Errors)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Length", "Width", "Capacity", "Shorten"},
		{"Opened", 2050, 625, 74, 1500},
		{"Small", 2050, 625, 7, 0},
	})

	result := ImportFile(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(result.Profiles))
	}
	if result.Profiles[0].FirstBoardShortenBy != 1500 {
		t.Errorf("expected shortening 1500, got %f", result.Profiles[0].FirstBoardShortenBy)
	}
	if result.Profiles[1].Capacity != 7 {
		t.Errorf("expected capacity 7, got %d", result.Profiles[1].Capacity)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Oak", 1800, 190, 20},
		{"Pine", 2000, 600, 40},
	})

	result := ImportExcel(path)
	if len(result.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d (errors: %v)", len(result.Profiles), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportExcel_EmptySheet(t *testing.T) {
	path := createTestExcel(t, nil)
	result := ImportExcel(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty sheet")
	}
}
