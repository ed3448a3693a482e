package ingest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"maechul/internal/category"
	"maechul/internal/core"
)

var (
	// ErrNoSheet means the workbook contains no sheets at all.
	ErrNoSheet = errors.New("workbook has no sheets")
	// ErrNoRecords means the file parsed but not a single row survived
	// the skip rules — the "no data found" signal for the caller.
	ErrNoRecords = errors.New("no sales records found in file")
)

// ColumnLayout fixes the 0-based column index of each field. Positions are
// configuration, never derived from header text: legacy files always carry
// the date in column A, the amount in column P and the item name in
// column AA.
type ColumnLayout struct {
	DateCol   int
	AmountCol int
	LabelCol  int
}

// DefaultLayout returns the column positions of the legacy export format.
func DefaultLayout() ColumnLayout {
	return ColumnLayout{DateCol: 0, AmountCol: 15, LabelCol: 26}
}

// DefaultHeaderMarkers returns the substrings that identify the date
// column header across known export variants.
func DefaultHeaderMarkers() []string {
	return []string{"작성일자", "거래일자", "발행일자", "일자"}
}

// DefaultHeaderScanRows bounds how deep into the file the header row is
// searched for.
const DefaultHeaderScanRows = 5

// Parser reads the first sheet of an .xlsx workbook into sales records.
type Parser struct {
	layout     ColumnLayout
	markers    []string
	scanRows   int
	classifier *category.Classifier
}

// NewParser builds a parser. Zero-value layout fields are allowed (column
// A is index 0); nil markers and a zero scan depth fall back to defaults.
func NewParser(layout ColumnLayout, markers []string, scanRows int, classifier *category.Classifier) *Parser {
	if markers == nil {
		markers = DefaultHeaderMarkers()
	}
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}
	if classifier == nil {
		classifier = category.Default()
	}
	return &Parser{layout: layout, markers: markers, scanRows: scanRows, classifier: classifier}
}

// Parse reads an .xlsx workbook and returns the canonical records of its
// first sheet. Malformed rows are skipped silently; only a file that
// yields nothing at all is an error.
func (p *Parser) Parse(r io.Reader) ([]core.SalesRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records := p.ParseRows(rows)
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	slog.Info("Parsed sales file",
		"sheet", sheets[0],
		"rows", len(rows),
		"records", len(records))
	return records, nil
}

// ParseRows builds records from already-extracted sheet rows. Data starts
// on the row after the detected header row.
func (p *Parser) ParseRows(rows [][]string) []core.SalesRecord {
	header := p.findHeaderRow(rows)
	var records []core.SalesRecord
	for i := header + 1; i < len(rows); i++ {
		if len(rows[i]) == 0 {
			continue
		}
		rec, ok := p.buildRecord(rows[i])
		if !ok {
			slog.Debug("Skipping row", "row", i)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// findHeaderRow returns the index of the first row within the scan window
// containing a cell with any header marker substring. Files without a
// recognizable header treat row 0 as the header, so data starts at row 1.
func (p *Parser) findHeaderRow(rows [][]string) int {
	limit := p.scanRows
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			for _, marker := range p.markers {
				if strings.Contains(cell, marker) {
					return i
				}
			}
		}
	}
	return 0
}

// buildRecord applies the row-level skip rules: missing date or amount
// cell, failed date normalization, and unparseable or zero amounts all
// drop the row without error.
func (p *Parser) buildRecord(row []string) (core.SalesRecord, bool) {
	rawDate := cellAt(row, p.layout.DateCol)
	rawAmount := cellAt(row, p.layout.AmountCol)
	label := strings.TrimSpace(cellAt(row, p.layout.LabelCol))

	if strings.TrimSpace(rawDate) == "" || strings.TrimSpace(rawAmount) == "" {
		return core.SalesRecord{}, false
	}
	date, ok := ParseCellDate(rawDate)
	if !ok {
		return core.SalesRecord{}, false
	}
	amount, ok := ParseAmount(rawAmount)
	if !ok {
		return core.SalesRecord{}, false
	}

	rec, err := core.NewSalesRecord(date, label, p.classifier.Classify(label), amount)
	if err != nil {
		return core.SalesRecord{}, false
	}
	return rec, true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
