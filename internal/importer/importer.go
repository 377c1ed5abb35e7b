// Package importer reads supply profile lists from CSV and Excel files and
// room outlines from DXF drawings. Column headers are matched
// case-insensitively against a set of aliases.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult is what an import produced. Errors and warnings are meant
// for the user and name the offending row.
type ImportResult struct {
	Profiles []model.SupplyProfile
	Errors   []string
	Warnings []string
}

// ColumnMapping holds the column index of each profile field, -1 when absent.
type ColumnMapping struct {
	Name        int
	Length      int
	Width       int
	Capacity    int
	Shorten     int
	Price       int
	Description int
}

// headerAliases lists the lowercase header texts accepted per column role.
var headerAliases = map[string][]string{
	"name":        {"name", "profile", "product", "label", "item"},
	"length":      {"length", "len", "l", "board length"},
	"width":       {"width", "w", "board width"},
	"capacity":    {"capacity", "qty", "quantity", "count", "boards", "pack size", "pcs"},
	"shorten":     {"shorten", "shorten by", "first board shorten", "first cut", "opened"},
	"price":       {"price", "price per board", "cost", "unit price"},
	"description": {"description", "desc", "notes", "comment"},
}

// newCSVReader returns a reader tolerant of ragged rows and stray quotes,
// both common in spreadsheet exports.
func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// DetectCSVDelimiter guesses the delimiter of CSV data among comma,
// semicolon, tab and pipe. A candidate scores by how many records share
// the column count of the first one; single-column splits never win.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		if score := delimiterScore(data, delim); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func delimiterScore(data []byte, delim rune) int {
	records, err := newCSVReader(bytes.NewReader(data), delim).ReadAll()
	if err != nil || len(records) == 0 {
		return 0
	}
	cols := len(records[0])
	if cols < 2 {
		return 0
	}
	consistent := 0
	for _, rec := range records {
		if len(rec) == cols {
			consistent++
		}
	}
	return consistent*10 + cols
}

// DetectColumns maps header cells to column roles. When no cell matches a
// known alias the row is data, and the positional layout name, length,
// width, capacity, shorten, price is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"name":        &mapping.Name,
		"length":      &mapping.Length,
		"width":       &mapping.Width,
		"capacity":    &mapping.Capacity,
		"shorten":     &mapping.Shorten,
		"price":       &mapping.Price,
		"description": &mapping.Description,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Name:        0,
			Length:      1,
			Width:       2,
			Capacity:    3,
			Shorten:     4,
			Price:       5,
			Description: -1,
		}, false
	}

	return mapping, true
}

// getCell returns the trimmed cell at idx, or "" for a missing column.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts both "1.5" and "1,5" decimal notation.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseRow extracts a SupplyProfile from a row using the given column mapping.
// Returns the profile, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.SupplyProfile, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Profile %d", count+1)
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.SupplyProfile{}, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	length, err := parseNumber(lengthStr)
	if err != nil {
		return model.SupplyProfile{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.SupplyProfile{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := parseNumber(widthStr)
	if err != nil {
		return model.SupplyProfile{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	capStr := getCell(row, mapping.Capacity)
	if capStr == "" {
		return model.SupplyProfile{}, fmt.Sprintf("%s: Missing capacity value", rowLabel), ""
	}
	capacity, err := strconv.Atoi(capStr)
	if err != nil {
		return model.SupplyProfile{}, fmt.Sprintf("%s: Invalid capacity '%s'", rowLabel, capStr), ""
	}

	profile := model.NewSupplyProfile(name, length, width, capacity)
	profile.Description = getCell(row, mapping.Description)

	var warnings []string
	if s := getCell(row, mapping.Shorten); s != "" {
		if v, err := parseNumber(s); err == nil {
			profile.FirstBoardShortenBy = v
		} else {
			warnings = append(warnings, fmt.Sprintf("Invalid first board shortening '%s', using 0", s))
		}
	}
	if s := getCell(row, mapping.Price); s != "" {
		if v, err := parseNumber(strings.TrimLeft(s, "$€£ ")); err == nil {
			profile.PricePerBoard = v
		} else {
			warnings = append(warnings, fmt.Sprintf("Invalid price '%s', using 0", s))
		}
	}

	if err := profile.Validate(); err != nil {
		return model.SupplyProfile{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	var warning string
	if len(warnings) > 0 {
		warning = rowLabel + ": " + strings.Join(warnings, "; ")
	}
	return profile, "", warning
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV reads supply profiles from a CSV file with any of the
// delimiters DetectCSVDelimiter knows.
func ImportCSV(path string) ImportResult {
	var result ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if name, ok := delimiterNames[delimiter]; ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line", result.Warnings)
}

var delimiterNames = map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}

// ImportCSVFromReader is ImportCSV for data with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel reads supply profiles from the first sheet of a workbook.
func ImportExcel(path string) ImportResult {
	fail := func(msg string) ImportResult {
		return ImportResult{Errors: []string{msg}}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fail(fmt.Sprintf("Cannot open Excel file: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fail("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fail(fmt.Sprintf("Cannot read Excel data: %v", err))
	}
	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(path[strings.LastIndex(path, ".")+1:]) {
	case "xlsx", "xlsm", "xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// importFromRows turns CSV records or sheet rows into profiles. Bad rows
// are reported and skipped; rowPrefix names rows in messages.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Capacity == -1 {
			missing = append(missing, "Capacity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := parseNumber(strings.TrimSpace(rows[0][1])); err != nil {
			// Unrecognized header, keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		profile, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Profiles))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Profiles = append(result.Profiles, profile)
	}

	return result
}
