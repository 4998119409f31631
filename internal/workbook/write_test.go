package workbook_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"tagreport/internal/failure"
	"tagreport/internal/record"
	"tagreport/internal/workbook"
)

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	book, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })
	return book
}

func TestWriteProducesStyledSheets(t *testing.T) {
	records := []record.Record{
		{Artist: "Somebody Long Named", Title: "Y", DurationDisplay: "2:05", Album: "A", TrackNumber: 2, Filename: "Y.mp3"},
		{Artist: "Al", Title: "X", DurationDisplay: "0:59", Album: "A", TrackNumber: 1, Filename: "X.mp3"},
		{Artist: "Zed", Title: "Z", DurationDisplay: "00:00", Album: "B", TrackNumber: 1, Filename: "Z.mp3"},
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := workbook.Write(path, workbook.Plan(records)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	book := openWorkbook(t, path)
	if got := book.GetSheetList(); !slices.Equal(got, []string{"All Songs", "A", "B"}) {
		t.Fatalf("unexpected sheets %v", got)
	}

	rows, err := book.GetRows("All Songs")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if !slices.Equal(rows[0], record.Columns) {
		t.Fatalf("unexpected header %v", rows[0])
	}
	var order []string
	for _, row := range rows[1:] {
		order = append(order, row[6])
	}
	if !slices.Equal(order, []string{"X.mp3", "Y.mp3", "Z.mp3"}) {
		t.Fatalf("All Songs order = %v", order)
	}

	albumRows, err := book.GetRows("A")
	if err != nil {
		t.Fatalf("GetRows A: %v", err)
	}
	if len(albumRows) != 3 || albumRows[1][6] != "X.mp3" || albumRows[2][6] != "Y.mp3" {
		t.Fatalf("unexpected album A rows %v", albumRows)
	}
	if albumRows[1][4] != "1" {
		t.Fatalf("track cell = %q", albumRows[1][4])
	}

	styleID, err := book.GetCellStyle("B", "C1")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	style, err := book.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Fatal("header cell is not bold")
	}
	if style.Alignment == nil || style.Alignment.Horizontal != "center" {
		t.Fatal("header cell is not centered")
	}
	if len(style.Border) < 4 {
		t.Fatalf("expected 4 header borders, got %d", len(style.Border))
	}

	dataStyleID, err := book.GetCellStyle("B", "H2")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	dataStyle, err := book.GetStyle(dataStyleID)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if len(dataStyle.Border) < 4 {
		t.Fatalf("expected bordered data cell, got %d borders", len(dataStyle.Border))
	}

	width, err := book.GetColWidth("All Songs", "A")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if want := float64(len("Somebody Long Named") + 2); width != want {
		t.Fatalf("artist column width = %v, want %v", width, want)
	}
	bWidth, err := book.GetColWidth("B", "A")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if want := float64(len("Artist") + 2); bWidth != want {
		t.Fatalf("per-sheet width = %v, want %v", bWidth, want)
	}

	view, err := book.GetSheetView("A", 0)
	if err != nil {
		t.Fatalf("GetSheetView: %v", err)
	}
	if view.ShowGridLines != nil && !*view.ShowGridLines {
		t.Fatal("gridlines hidden")
	}
}

func TestWriteEmptyRecordsStillProducesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := workbook.Write(path, workbook.Plan(nil)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	book := openWorkbook(t, path)
	if got := book.GetSheetList(); !slices.Equal(got, []string{"All Songs"}) {
		t.Fatalf("unexpected sheets %v", got)
	}
	rows, err := book.GetRows("All Songs")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestWriteFailureMatchesErrWrite(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := workbook.Write(filepath.Join(blocker, "out.xlsx"), workbook.Plan(nil))
	if !errors.Is(err, failure.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	var writeErr *workbook.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *workbook.WriteError, got %T", err)
	}
}

func TestColumnWidthCap(t *testing.T) {
	if got := workbook.ColumnWidth(10); got != 12 {
		t.Fatalf("ColumnWidth(10) = %d", got)
	}
	if got := workbook.ColumnWidth(1000); got != workbook.MaxColumnWidth {
		t.Fatalf("ColumnWidth(1000) = %d", got)
	}
}
