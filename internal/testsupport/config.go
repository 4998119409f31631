package testsupport

import (
	"path/filepath"
	"testing"

	"tagreport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The scan directory is <base>/music and both outputs land in <base>/out.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Scan.Dir = filepath.Join(base, "music")
	cfgVal.Output.CSVPath = filepath.Join(base, "out", "metadata.csv")
	cfgVal.Output.WorkbookPath = filepath.Join(base, "out", "metadata.xlsx")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return builder.cfg
}

// WithWorkers sets the tag-reading concurrency.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Workers = n
	}
}

// WithRecursive toggles subdirectory scanning.
func WithRecursive(recursive bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Recursive = recursive
	}
}

// WithExtensions replaces the accepted extension list.
func WithExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Extensions = exts
	}
}

// WithTitleFromFilename enables the filename title fallback.
func WithTitleFromFilename() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tags.TitleFromFilename = true
	}
}

// WithDelimiter overrides the flat-file delimiter.
func WithDelimiter(delim string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Delimiter = delim
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Scan.Dir)
}
