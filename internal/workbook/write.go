package workbook

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"tagreport/internal/failure"
	"tagreport/internal/fileutil"
	"tagreport/internal/record"
	"tagreport/internal/textutil"
)

const (
	headerFill = "DDDDDD"
	borderRGB  = "000000"
	// MaxColumnWidth is the widest column the xlsx format allows.
	MaxColumnWidth = 255
	columnPadding  = 2
)

// WriteError reports a failed workbook export. It matches failure.ErrWrite.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write workbook %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{failure.ErrWrite, e.Err}
}

// Write renders sheets to path, replacing it only when the whole workbook was
// produced.
func Write(path string, sheets []Sheet) error {
	book, err := Build(sheets)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer book.Close()

	err = fileutil.WriteAtomic(path, func(w io.Writer) error {
		return book.Write(w)
	})
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Build renders sheets into an in-memory workbook. The caller closes it.
func Build(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}
	book := excelize.NewFile()
	st, err := newStyles(book)
	if err != nil {
		_ = book.Close()
		return nil, err
	}

	defaultSheet := book.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := book.SetSheetName(defaultSheet, sheet.Name); err != nil {
				_ = book.Close()
				return nil, fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := book.NewSheet(sheet.Name); err != nil {
			_ = book.Close()
			return nil, fmt.Errorf("add sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(book, sheet, st); err != nil {
			_ = book.Close()
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}
	book.SetActiveSheet(0)
	return book, nil
}

type styles struct {
	header int
	cell   int
}

func newStyles(book *excelize.File) (styles, error) {
	borders := []excelize.Border{
		{Type: "left", Color: borderRGB, Style: 1},
		{Type: "top", Color: borderRGB, Style: 1},
		{Type: "right", Color: borderRGB, Style: 1},
		{Type: "bottom", Color: borderRGB, Style: 1},
	}
	header, err := book.NewStyle(&excelize.Style{
		Border:    borders,
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}
	cell, err := book.NewStyle(&excelize.Style{Border: borders})
	if err != nil {
		return styles{}, fmt.Errorf("cell style: %w", err)
	}
	return styles{header: header, cell: cell}, nil
}

func writeSheet(book *excelize.File, sheet Sheet, st styles) error {
	name := sheet.Name
	widths := make([]int, len(record.Columns))

	header := make([]any, len(record.Columns))
	for i, col := range record.Columns {
		header[i] = col
		widths[i] = textutil.DisplayWidth(col)
	}
	if err := book.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, rec := range sheet.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rec.Cells()
		if err := book.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
		for col, v := range values {
			widths[col] = max(widths[col], textutil.DisplayWidth(cellText(v)))
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(record.Columns))
	if err != nil {
		return err
	}
	if err := book.SetCellStyle(name, "A1", lastCol+"1", st.header); err != nil {
		return err
	}
	if n := len(sheet.Records); n > 0 {
		if err := book.SetCellStyle(name, "A2", lastCol+strconv.Itoa(n+1), st.cell); err != nil {
			return err
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := book.SetColWidth(name, col, col, float64(ColumnWidth(w))); err != nil {
			return err
		}
	}

	showGrid := true
	return book.SetSheetView(name, 0, &excelize.ViewOptions{ShowGridLines: &showGrid})
}

// ColumnWidth converts the widest cell's display width into a column width.
func ColumnWidth(contentWidth int) int {
	return min(contentWidth+columnPadding, MaxColumnWidth)
}

func cellText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}
