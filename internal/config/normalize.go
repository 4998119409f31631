package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeScan(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeScan() error {
	c.Scan.Dir = strings.TrimSpace(c.Scan.Dir)
	if c.Scan.Dir == "" {
		if value, ok := os.LookupEnv(envScanDir); ok {
			c.Scan.Dir = strings.TrimSpace(value)
		}
	}
	if c.Scan.Dir == "" {
		c.Scan.Dir = defaultScanDir
	}
	var err error
	if c.Scan.Dir, err = expandPath(c.Scan.Dir); err != nil {
		return fmt.Errorf("scan.dir: %w", err)
	}

	c.Scan.Extensions = normalizeExtensions(c.Scan.Extensions)
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = []string{defaultExtension}
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = defaultWorkers
	}
	return nil
}

func normalizeExtensions(values []string) []string {
	exts := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, ext := range values {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		normalized = strings.TrimLeft(normalized, "*")
		if normalized == "" || normalized == "." {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	return exts
}

func (c *Config) normalizeOutput() error {
	var err error
	c.Output.CSVPath = strings.TrimSpace(c.Output.CSVPath)
	if c.Output.CSVPath == "" {
		if value, ok := os.LookupEnv(envCSVPath); ok {
			c.Output.CSVPath = strings.TrimSpace(value)
		}
	}
	if c.Output.CSVPath, err = expandPath(c.Output.CSVPath); err != nil {
		return fmt.Errorf("output.csv_path: %w", err)
	}

	c.Output.WorkbookPath = strings.TrimSpace(c.Output.WorkbookPath)
	if c.Output.WorkbookPath == "" {
		if value, ok := os.LookupEnv(envWorkbookPath); ok {
			c.Output.WorkbookPath = strings.TrimSpace(value)
		}
	}
	if c.Output.WorkbookPath, err = expandPath(c.Output.WorkbookPath); err != nil {
		return fmt.Errorf("output.workbook_path: %w", err)
	}

	switch strings.ToLower(c.Output.Delimiter) {
	case "":
		c.Output.Delimiter = defaultDelimiter
	case "tab", `\t`:
		c.Output.Delimiter = "\t"
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	file, err := expandPath(strings.TrimSpace(c.Logging.File))
	if err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	c.Logging.File = file
	return nil
}
