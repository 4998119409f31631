package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"tagreport/internal/pipeline"
	"tagreport/internal/record"
)

func printSummary(out io.Writer, summary *pipeline.Summary, colorize bool) {
	for _, line := range renderSectionHeader("Extraction", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Run", statusInfo, summary.RunID, colorize))
	fmt.Fprintln(out, renderStatusLine("Directory", statusInfo, summary.ScanDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Files parsed", statusOK,
		fmt.Sprintf("%d of %d (%s total)", summary.Parsed, summary.Discovered, record.FormatDuration(summary.TotalSeconds())), colorize))
	if n := len(summary.Skipped); n > 0 {
		fmt.Fprintln(out, renderStatusLine("Files skipped", statusWarn, strconv.Itoa(n), colorize))
	}
	for _, dirErr := range summary.DirectoryErrors {
		fmt.Fprintln(out, renderStatusLine("Directory skipped", statusWarn, dirErr, colorize))
	}

	if len(summary.Albums) > 0 {
		fmt.Fprintln(out)
		rows := make([][]string, 0, len(summary.Albums))
		for _, album := range summary.Albums {
			rows = append(rows, []string{
				albumLabel(album.Name),
				album.Sheet,
				strconv.Itoa(album.Tracks),
				record.FormatDuration(album.TotalSeconds),
			})
		}
		fmt.Fprintln(out, renderTableLayout(tableLayout{
			Headers: []string{"Album", "Sheet", "Tracks", "Length"},
			Rows:    rows,
			Footer:  []string{"Total", "", strconv.Itoa(summary.Parsed), record.FormatDuration(summary.TotalSeconds())},
			Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
		}))
	}

	if len(summary.Skipped) > 0 {
		fmt.Fprintln(out)
		rows := make([][]string, 0, len(summary.Skipped))
		for _, skipped := range summary.Skipped {
			rows = append(rows, []string{relativeTo(summary.ScanDir, skipped.Path), skipped.Reason})
		}
		fmt.Fprintln(out, renderTable([]string{"Skipped file", "Reason"}, rows, nil))
	}

	fmt.Fprintln(out)
	if summary.CSVPath != "" {
		fmt.Fprintf(out, "Metadata extracted and saved to '%s'\n", summary.CSVPath)
	} else {
		fmt.Fprintln(out, renderStatusLine("CSV export", statusError, "failed", colorize))
	}
	if summary.WorkbookPath != "" {
		fmt.Fprintf(out, "Metadata extracted and saved to '%s' with separate sheets for each album and an 'All Songs' sheet.\n", summary.WorkbookPath)
	} else {
		fmt.Fprintln(out, renderStatusLine("Excel export", statusError, "failed", colorize))
	}
}

func albumLabel(name string) string {
	if name == "" {
		return "(none)"
	}
	return name
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
