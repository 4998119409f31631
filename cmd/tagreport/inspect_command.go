package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tagreport/internal/config"
	"tagreport/internal/pipeline"
	"tagreport/internal/record"
	"tagreport/internal/tags"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the tags and normalized record for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolvedConfig(config.Overrides{})
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
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			raw, rec, err := runner.Inspect(path)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, rec)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:   %s\n", path)
			fmt.Fprintf(out, "Format: %s\n\n", raw.Format)
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value", "Tagged"},
				inspectRows(raw, rec),
				nil,
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the normalized record as JSON")
	return cmd
}

func inspectRows(raw tags.Raw, rec record.Record) [][]string {
	return [][]string{
		{"Artist", rec.Artist, yesNo(raw.Artist.Present())},
		{"Title", rec.Title, yesNo(raw.Title.Present())},
		{"Duration", rec.DurationDisplay, yesNo(raw.Duration.Present())},
		{"Album", rec.Album, yesNo(raw.Album.Present())},
		{"Track", strconv.Itoa(rec.TrackNumber), yesNo(raw.Track.Present())},
		{"Genre", rec.Genre, yesNo(raw.Genre.Present())},
		{"Filename", rec.Filename, "-"},
		{"Comment", rec.Comment, yesNo(raw.Comment.Present())},
	}
}
