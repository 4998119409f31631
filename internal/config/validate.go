package config

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"tagreport/internal/failure"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if c.Scan.Workers < 1 || c.Scan.Workers > maxWorkers {
		return invalid("scan.workers", fmt.Sprintf("must be between 1 and %d, got %d", maxWorkers, c.Scan.Workers))
	}
	if len(c.Scan.Extensions) == 0 {
		return invalid("scan.extensions", "at least one extension is required")
	}
	return nil
}

func (c *Config) validateOutput() error {
	delim := c.Output.Delimiter
	if utf8.RuneCountInString(delim) != 1 {
		return invalid("output.delimiter", fmt.Sprintf("must be a single character, got %q", delim))
	}
	r, _ := utf8.DecodeRuneInString(delim)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return invalid("output.delimiter", fmt.Sprintf("%q cannot be used as a delimiter", delim))
	}
	csvPath := filepath.Clean(c.CSVDestination())
	workbookPath := filepath.Clean(c.WorkbookDestination())
	if csvPath == workbookPath {
		return invalid("output", fmt.Sprintf("csv and workbook destinations must differ (both %s)", csvPath))
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return invalid("logging.level", fmt.Sprintf("unsupported value %q", c.Logging.Level))
	}
}

func invalid(field, message string) error {
	return failure.Wrap(failure.ErrConfiguration, "config", field, message, nil)
}
