package config

const (
	defaultScanDir          = "."
	defaultExtension        = ".mp3"
	defaultRecursive        = true
	defaultWorkers          = 1
	maxWorkers              = 64
	defaultCSVName          = "mp3_metadata.csv"
	defaultWorkbookName     = "mp3_metadata.xlsx"
	defaultDelimiter        = ","
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	envScanDir              = "TAGREPORT_SCAN_DIR"
	envCSVPath              = "TAGREPORT_CSV_PATH"
	envWorkbookPath         = "TAGREPORT_WORKBOOK_PATH"
	defaultConfigPathTilde  = "~/.config/tagreport/config.toml"
	defaultProjectConfigRel = "tagreport.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Extensions: []string{defaultExtension},
			Recursive:  defaultRecursive,
			Workers:    defaultWorkers,
		},
		Output: Output{
			Delimiter: defaultDelimiter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
