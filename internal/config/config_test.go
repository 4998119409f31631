package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tagreport/internal/config"
	"tagreport/internal/failure"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TAGREPORT_SCAN_DIR", "")
	t.Setenv("TAGREPORT_CSV_PATH", "")
	t.Setenv("TAGREPORT_WORKBOOK_PATH", "")
	os.Unsetenv("TAGREPORT_SCAN_DIR")
	os.Unsetenv("TAGREPORT_CSV_PATH")
	os.Unsetenv("TAGREPORT_WORKBOOK_PATH")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfig(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "tagreport", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Scan.Dir != wd {
		t.Fatalf("expected scan dir to default to working directory, got %q", cfg.Scan.Dir)
	}
	if len(cfg.Scan.Extensions) != 1 || cfg.Scan.Extensions[0] != ".mp3" {
		t.Fatalf("unexpected default extensions: %v", cfg.Scan.Extensions)
	}
	if !cfg.Scan.Recursive {
		t.Fatal("expected recursive scan by default")
	}
	if cfg.Scan.Workers != 1 {
		t.Fatalf("expected sequential reads by default, got %d workers", cfg.Scan.Workers)
	}
	if got := cfg.CSVDestination(); got != filepath.Join(wd, "mp3_metadata.csv") {
		t.Fatalf("unexpected csv destination %q", got)
	}
	if got := cfg.WorkbookDestination(); got != filepath.Join(wd, "mp3_metadata.xlsx") {
		t.Fatalf("unexpected workbook destination %q", got)
	}
	if cfg.DelimiterRune() != ',' {
		t.Fatalf("unexpected delimiter %q", cfg.DelimiterRune())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "tagreport.toml")

	custom := config.Default()
	custom.Scan.Dir = filepath.Join(tempDir, "music")
	custom.Scan.Extensions = []string{"MP3", "*.flac", ".mp3", " "}
	custom.Scan.Workers = 4
	custom.Output.CSVPath = filepath.Join(tempDir, "out", "tracks.tsv")
	custom.Output.Delimiter = "tab"
	custom.Tags.TitleFromFilename = true
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if got := strings.Join(cfg.Scan.Extensions, ","); got != ".mp3,.flac" {
		t.Fatalf("unexpected extensions %q", got)
	}
	if cfg.Scan.Workers != 4 {
		t.Fatalf("unexpected workers %d", cfg.Scan.Workers)
	}
	if cfg.DelimiterRune() != '\t' {
		t.Fatalf("expected tab delimiter, got %q", cfg.DelimiterRune())
	}
	if cfg.CSVDestination() != custom.Output.CSVPath {
		t.Fatalf("unexpected csv destination %q", cfg.CSVDestination())
	}
	if cfg.WorkbookDestination() != filepath.Join(custom.Scan.Dir, "mp3_metadata.xlsx") {
		t.Fatalf("unexpected workbook destination %q", cfg.WorkbookDestination())
	}
	if !cfg.Tags.TitleFromFilename {
		t.Fatal("expected title_from_filename to be honoured")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadUsesEnvironmentFallbacks(t *testing.T) {
	isolateEnv(t)
	base := t.TempDir()
	t.Setenv("TAGREPORT_SCAN_DIR", filepath.Join(base, "albums"))
	t.Setenv("TAGREPORT_CSV_PATH", filepath.Join(base, "report.csv"))
	t.Setenv("TAGREPORT_WORKBOOK_PATH", filepath.Join(base, "report.xlsx"))

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Scan.Dir != filepath.Join(base, "albums") {
		t.Fatalf("unexpected scan dir %q", cfg.Scan.Dir)
	}
	if cfg.CSVDestination() != filepath.Join(base, "report.csv") {
		t.Fatalf("unexpected csv destination %q", cfg.CSVDestination())
	}
	if cfg.WorkbookDestination() != filepath.Join(base, "report.xlsx") {
		t.Fatalf("unexpected workbook destination %q", cfg.WorkbookDestination())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[scan]\nfolder = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	isolateEnv(t)
	cases := map[string]func(*config.Config){
		"workers":         func(c *config.Config) { c.Scan.Workers = -1 },
		"delimiter":       func(c *config.Config) { c.Output.Delimiter = ";;" },
		"quote delimiter": func(c *config.Config) { c.Output.Delimiter = `"` },
		"same outputs": func(c *config.Config) {
			c.Output.CSVPath = "/tmp/report"
			c.Output.WorkbookPath = "/tmp/report"
		},
		"log level": func(c *config.Config) { c.Logging.Level = "verbose" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, _, _, err := config.Load("")
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, failure.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	isolateEnv(t)
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	dir := t.TempDir()
	err = cfg.Apply(config.Overrides{
		ScanDir:      dir,
		WorkbookPath: filepath.Join(dir, "albums.xlsx"),
		Workers:      3,
		LogLevel:     "DEBUG",
		LogFile:      filepath.Join(dir, "logs", "..", "run.log"),
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if cfg.Scan.Dir != dir {
		t.Fatalf("unexpected scan dir %q", cfg.Scan.Dir)
	}
	if cfg.CSVDestination() != filepath.Join(dir, "mp3_metadata.csv") {
		t.Fatalf("csv destination should follow the scan dir, got %q", cfg.CSVDestination())
	}
	if cfg.WorkbookDestination() != filepath.Join(dir, "albums.xlsx") {
		t.Fatalf("unexpected workbook destination %q", cfg.WorkbookDestination())
	}
	if cfg.Scan.Workers != 3 || cfg.Logging.Level != "debug" {
		t.Fatalf("overrides not applied: workers=%d level=%q", cfg.Scan.Workers, cfg.Logging.Level)
	}
	if cfg.Logging.File != filepath.Join(dir, "run.log") {
		t.Fatalf("log file not cleaned: %q", cfg.Logging.File)
	}

	if err := cfg.Apply(config.Overrides{Workers: 1000}); err == nil {
		t.Fatal("expected out-of-range workers to fail validation")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	isolateEnv(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if !strings.HasSuffix(cfg.Scan.Dir, "Music") {
		t.Fatalf("unexpected sample scan dir %q", cfg.Scan.Dir)
	}
}
