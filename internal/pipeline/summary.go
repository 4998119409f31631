package pipeline

import (
	"time"

	"tagreport/internal/record"
)

// Skipped describes a file left out of the report.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Album summarizes one album sheet.
type Album struct {
	Name         string  `json:"name"`
	Sheet        string  `json:"sheet"`
	Tracks       int     `json:"tracks"`
	TotalSeconds float64 `json:"total_seconds"`
}

// Summary reports the outcome of a run. Output paths are empty when that
// export failed.
type Summary struct {
	RunID           string          `json:"run_id"`
	ScanDir         string          `json:"scan_dir"`
	Discovered      int             `json:"discovered"`
	Parsed          int             `json:"parsed"`
	Skipped         []Skipped       `json:"skipped"`
	DirectoryErrors []string        `json:"directory_errors,omitempty"`
	Albums          []Album         `json:"albums"`
	CSVPath         string          `json:"csv_path,omitempty"`
	WorkbookPath    string          `json:"workbook_path,omitempty"`
	Elapsed         time.Duration   `json:"elapsed_ns"`
	Records         []record.Record `json:"-"`
}

// TotalSeconds sums the playing time of every parsed file.
func (s *Summary) TotalSeconds() float64 {
	var total float64
	for _, rec := range s.Records {
		total += rec.DurationSeconds
	}
	return total
}
