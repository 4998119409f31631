package preflight

import (
	"path/filepath"

	"tagreport/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckReadableDirectory("Scan directory", cfg.Scan.Dir)}

	csvDir := filepath.Dir(cfg.CSVDestination())
	workbookDir := filepath.Dir(cfg.WorkbookDestination())
	results = append(results, CheckWritableDestination("CSV destination", csvDir))
	if workbookDir != csvDir {
		results = append(results, CheckWritableDestination("Workbook destination", workbookDir))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
