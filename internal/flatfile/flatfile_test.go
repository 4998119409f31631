package flatfile_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagreport/internal/failure"
	"tagreport/internal/flatfile"
	"tagreport/internal/record"
)

func sampleRecords() []record.Record {
	return []record.Record{
		{Artist: "B", Title: "Second", DurationDisplay: "2:05", DurationSeconds: 125, Album: "A", TrackNumber: 2, Filename: "b.mp3"},
		{Artist: "A", Title: "Quote \"me\", please", DurationDisplay: "00:00", Album: "A", TrackNumber: 1, Filename: "a.mp3", Comment: "line one\nline two"},
		{Title: "Z", DurationDisplay: "0:59", Album: "B", Filename: "z.mp3"},
	}
}

func TestWriteKeepsOrderAndQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := sampleRecords()

	if err := flatfile.Write(path, records, ','); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-read export: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("expected %d rows, got %d", len(records)+1, len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(record.Columns, ",") {
		t.Fatalf("unexpected header %v", rows[0])
	}
	for i, rec := range records {
		if rows[i+1][6] != rec.Filename {
			t.Fatalf("row %d filename = %q, want %q", i+1, rows[i+1][6], rec.Filename)
		}
	}
	if rows[2][1] != `Quote "me", please` {
		t.Fatalf("quoted title not preserved: %q", rows[2][1])
	}
	if rows[2][7] != "line one\nline two" {
		t.Fatalf("multi-line comment not preserved: %q", rows[2][7])
	}
	if rows[3][4] != "0" || rows[3][2] != "0:59" {
		t.Fatalf("unexpected row %v", rows[3])
	}
}

func TestEncodeCustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	if err := flatfile.Encode(&buf, sampleRecords()[:1], '\t'); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	reader := csv.NewReader(&buf)
	reader.Comma = '\t'
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse tab-separated output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[1]; len(got) != len(record.Columns) || got[len(got)-1] != "" {
		t.Fatalf("expected %d tab-separated fields ending in an empty comment, got %q", len(record.Columns), got)
	}
}

func TestWriteEmptyProducesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := flatfile.Write(path, nil, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != strings.Join(record.Columns, ",") {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestWriteFailureMatchesErrWrite(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := flatfile.Write(filepath.Join(blocker, "out.csv"), sampleRecords(), ',')
	if !errors.Is(err, failure.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	var writeErr *flatfile.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *flatfile.WriteError, got %T", err)
	}
	if !failure.IsFatal(err) {
		t.Fatal("write errors are fatal")
	}
}
