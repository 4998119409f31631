package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Scan controls which files the enumerator yields and how they are read.
type Scan struct {
	Dir        string   `toml:"dir"`
	Extensions []string `toml:"extensions"`
	Recursive  bool     `toml:"recursive"`
	// Workers bounds concurrent tag reads. Discovery order is preserved
	// regardless of the value.
	Workers int `toml:"workers"`
}

// Output names the two report destinations. Empty paths resolve to files
// inside the scan directory.
type Output struct {
	CSVPath      string `toml:"csv_path"`
	WorkbookPath string `toml:"workbook_path"`
	Delimiter    string `toml:"delimiter"`
}

// Tags contains normalization options applied to parsed tags.
type Tags struct {
	// TitleFromFilename substitutes a title derived from the file name when
	// the title tag is missing. A present but empty title is kept as is.
	TitleFromFilename bool `toml:"title_from_filename"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a copy of every log line.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for tagreport.
//
// Configuration sections:
//   - Scan: source directory, extensions, recursion, read parallelism
//   - Output: flat-file and workbook destinations, delimiter
//   - Tags: tag normalization options
//   - Logging: log format and level
type Config struct {
	Scan    Scan    `toml:"scan"`
	Output  Output  `toml:"output"`
	Tags    Tags    `toml:"tags"`
	Logging Logging `toml:"logging"`
}

// Overrides carries command-line values that take precedence over the file.
// Empty strings and zero values leave the loaded configuration untouched.
type Overrides struct {
	ScanDir      string
	CSVPath      string
	WorkbookPath string
	Workers      int
	LogLevel     string
	LogFile      string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPathTilde)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPathTilde)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectConfigRel)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Apply layers command-line overrides on top of the loaded configuration and
// re-validates the result.
func (c *Config) Apply(o Overrides) error {
	var err error
	if dir := strings.TrimSpace(o.ScanDir); dir != "" {
		if c.Scan.Dir, err = expandPath(dir); err != nil {
			return fmt.Errorf("scan directory: %w", err)
		}
	}
	if p := strings.TrimSpace(o.CSVPath); p != "" {
		if c.Output.CSVPath, err = expandPath(p); err != nil {
			return fmt.Errorf("csv path: %w", err)
		}
	}
	if p := strings.TrimSpace(o.WorkbookPath); p != "" {
		if c.Output.WorkbookPath, err = expandPath(p); err != nil {
			return fmt.Errorf("workbook path: %w", err)
		}
	}
	if o.Workers != 0 {
		c.Scan.Workers = o.Workers
	}
	if lvl := strings.TrimSpace(o.LogLevel); lvl != "" {
		c.Logging.Level = strings.ToLower(lvl)
	}
	if p := strings.TrimSpace(o.LogFile); p != "" {
		if c.Logging.File, err = expandPath(p); err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}
	return c.Validate()
}

// CSVDestination returns the flat-file output path, defaulting to a file in
// the scan directory.
func (c *Config) CSVDestination() string {
	if c.Output.CSVPath != "" {
		return c.Output.CSVPath
	}
	return filepath.Join(c.Scan.Dir, defaultCSVName)
}

// WorkbookDestination returns the workbook output path, defaulting to a file
// in the scan directory.
func (c *Config) WorkbookDestination() string {
	if c.Output.WorkbookPath != "" {
		return c.Output.WorkbookPath
	}
	return filepath.Join(c.Scan.Dir, defaultWorkbookName)
}

// DelimiterRune returns the configured field delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
