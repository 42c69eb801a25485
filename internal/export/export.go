// Package export writes monthly attendance reports to the export directory
// in one of the supported output formats. It is a pure writer: the ledger
// assembles the Monthly document, this package lays it out on disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned (wrapped with the offending format) when
// the requested output format is not one of json, csv or xlsx. No file is
// written in that case.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// missingCell fills grid cells for dates on which a student has no record.
const missingCell = "N/A"

// Record is one attendance entry as it appears in an export.
type Record struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

// Monthly is the document exported for one year-month: the students that
// have at least one record that month and their per-date records.
type Monthly struct {
	Period      string                       `json:"period"`
	GeneratedAt string                       `json:"generated_at"`
	Students    map[string]string            `json:"students"`
	Records     map[string]map[string]Record `json:"records"`
}

// Write renders m into dir in the requested format and returns the written
// file path. The file is named attendance_<period>.<format>.
func Write(dir string, m Monthly, format string) (string, error) {
	switch format {
	case "json", "csv", "xlsx":
	default:
		return "", fmt.Errorf("%w: %q (supported: json, csv, xlsx)", ErrUnsupportedFormat, format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("attendance_%s.%s", m.Period, format))

	var err error
	switch format {
	case "json":
		err = writeJSON(path, m)
	case "csv":
		err = writeCSV(path, m)
	case "xlsx":
		err = writeXLSX(path, m)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, m Monthly) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// grid flattens the monthly document into a header row plus one row per
// student, shared by the csv and xlsx writers.
func grid(m Monthly) [][]string {
	dates := make([]string, 0, len(m.Records))
	for date := range m.Records {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	ids := make([]string, 0, len(m.Students))
	for id := range m.Students {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	header := append([]string{"Student ID", "Name"}, dates...)
	rows := [][]string{header}
	for _, id := range ids {
		row := []string{id, m.Students[id]}
		for _, date := range dates {
			if rec, ok := m.Records[date][id]; ok {
				row = append(row, rec.Status)
			} else {
				row = append(row, missingCell)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func writeCSV(path string, m Monthly) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(grid(m)); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func writeXLSX(path string, m Monthly) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name export sheet: %w", err)
	}

	for r, row := range grid(m) {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
