// Package importer reads packing problems: the plain-text puzzle format,
// region lists from CSV or Excel sheets, and present shapes drawn in DXF.
// Spreadsheet imports support automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GiftPack/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Regions  []model.Region
	Presents []model.Present
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Counts lists the present count columns in catalog order; when nil, every
// column from CountStart onward is a count.
type ColumnMapping struct {
	Label      int
	Width      int
	Height     int
	Counts     []int
	CountStart int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "region", "tree", "description", "desc"},
	"width":  {"width", "w", "x", "cols", "columns"},
	"height": {"height", "h", "y", "length", "len"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Label, width and height columns are matched case-insensitively against
// known aliases; every other non-empty header names a present count column.
// Returns the mapping and true if a header was detected, or a positional
// mapping (width, height, counts...) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1}

	roles := make(map[int]bool)
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
						roles[i] = true
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
						roles[i] = true
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
						roles[i] = true
					}
				}
			}
		}
	}

	if len(roles) == 0 {
		return ColumnMapping{Label: -1, Width: 0, Height: 1, CountStart: 2}, false
	}

	mapping.Counts = []int{}
	for i, cell := range row {
		if roles[i] || strings.TrimSpace(cell) == "" {
			continue
		}
		mapping.Counts = append(mapping.Counts, i)
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// countColumns returns the column indices holding present counts for row.
func (m ColumnMapping) countColumns(row []string) []int {
	if m.Counts != nil {
		return m.Counts
	}
	var cols []int
	for i := m.CountStart; i < len(row); i++ {
		cols = append(cols, i)
	}
	return cols
}

// parseRow extracts a Region from a row using the given column mapping.
// Empty count cells count as zero; spreadsheets routinely leave them blank.
// Returns the region and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, presents int) (model.Region, string) {
	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Region{}, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, err := strconv.Atoi(widthStr)
	if err != nil || width < 0 {
		return model.Region{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Region{}, fmt.Sprintf("%s: Missing height value", rowLabel)
	}
	height, err := strconv.Atoi(heightStr)
	if err != nil || height < 0 {
		return model.Region{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr)
	}

	var counts []int
	for _, col := range mapping.countColumns(row) {
		s := getCell(row, col)
		if s == "" {
			counts = append(counts, 0)
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return model.Region{}, fmt.Sprintf("%s: Invalid present count '%s'", rowLabel, s)
		}
		counts = append(counts, n)
	}

	if presents > 0 {
		for len(counts) > presents && counts[len(counts)-1] == 0 {
			counts = counts[:len(counts)-1]
		}
		if len(counts) > presents {
			return model.Region{}, fmt.Sprintf("%s: %d present counts for a catalog of %d", rowLabel, len(counts), presents)
		}
		for len(counts) < presents {
			counts = append(counts, 0)
		}
	}

	region := model.NewRegion(width, height, counts)
	if label := getCell(row, mapping.Label); label != "" {
		region.Label = label
	}
	return region, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportRegionsCSV imports a region list from a CSV file. presents is the
// size of the catalog the regions will be packed from; pass 0 to accept any
// number of count columns.
// It automatically detects the delimiter and maps columns by header names.
func ImportRegionsCSV(path string, presents int) ImportResult {
	result := ImportResult{}

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
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", presents, result.Warnings)
}

// ImportRegionsCSVFromReader imports regions from a CSV reader with a
// specific delimiter.
func ImportRegionsCSVFromReader(reader io.Reader, delimiter rune, presents int) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", presents, nil)
}

// ImportRegionsExcel imports a region list from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportRegionsExcel(path string, presents int) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", presents, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a region.
func importFromRows(rows [][]string, rowPrefix string, presents int, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.Atoi(getCell(rows[0], 0)); err != nil && !isEmptyRow(rows[0]) {
		// Not numeric: an unrecognized header. Skip it but keep positional mapping.
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		region, errMsg := parseRow(row, mapping, rowLabel, presents)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		result.Regions = append(result.Regions, region)
	}

	return result
}
