package main

import (
	"github.com/spf13/cobra"

	"tagreport/internal/config"
	"tagreport/internal/pipeline"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var csvPath string
	var xlsxPath string
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "extract [dir]",
		Short: "Read tags from a directory and write the CSV and Excel reports",
		Long: "Scans the directory (default: scan.dir from the config, else the current directory)\n" +
			"for audio files, reads their tags, and writes a flat CSV export plus a workbook with an\n" +
			"\"All Songs\" sheet and one sheet per album. Files whose tags cannot be read are skipped\n" +
			"and listed in the summary.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := config.Overrides{
				CSVPath:      csvPath,
				WorkbookPath: xlsxPath,
				Workers:      workers,
			}
			if len(args) == 1 {
				overrides.ScanDir = args[0]
			}
			cfg, err := ctx.resolvedConfig(overrides)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}
			runner, err := pipeline.New(cfg, logger)
			if err != nil {
				return err
			}

			summary, runErr := runner.Run(cmd.Context())
			if summary == nil {
				return runErr
			}
			if jsonOutput {
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
				return runErr
			}
			out := cmd.OutOrStdout()
			printSummary(out, summary, shouldColorize(out))
			return runErr
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Destination for the CSV export (default <dir>/mp3_metadata.csv)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Destination for the Excel workbook (default <dir>/mp3_metadata.xlsx)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of files read in parallel")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}
