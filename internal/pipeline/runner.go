package pipeline

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tagreport/internal/config"
	"tagreport/internal/failure"
	"tagreport/internal/flatfile"
	"tagreport/internal/logging"
	"tagreport/internal/record"
	"tagreport/internal/scan"
	"tagreport/internal/tags"
	"tagreport/internal/workbook"
)

const lockSuffix = ".lock"

// Runner executes extraction runs for one configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	reader *tags.Reader
}

// New constructs a Runner. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline requires a config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		reader: tags.NewReader(logger),
	}, nil
}

// Run performs one extraction. The returned Summary is non-nil whenever
// enumeration succeeded, even if an export failed; export failures are
// joined into the returned error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = failure.WithRunID(ctx, runID)

	csvPath := r.cfg.CSVDestination()
	workbookPath := r.cfg.WorkbookDestination()

	// Check the root before the lock step creates any directory.
	seq, err := scan.Files(r.cfg.Scan.Dir, scan.Options{
		Extensions: r.cfg.Scan.Extensions,
		Recursive:  r.cfg.Scan.Recursive,
	})
	if err != nil {
		return nil, err
	}

	unlock, err := acquireLock(workbookPath)
	if err != nil {
		return nil, err
	}
	defer unlock()

	logger := logging.WithContext(ctx, r.logger)
	logger.Info("extraction started",
		logging.String("scan_dir", r.cfg.Scan.Dir),
		logging.Int("workers", r.cfg.Scan.Workers),
		logging.Bool("recursive", r.cfg.Scan.Recursive),
	)

	summary := &Summary{RunID: runID, ScanDir: r.cfg.Scan.Dir}

	paths, err := r.enumerate(failure.WithStage(ctx, "scan"), seq, summary)
	if err != nil {
		return nil, err
	}
	summary.Discovered = len(paths)

	records, err := r.readAll(failure.WithStage(ctx, "read"), paths, summary)
	if err != nil {
		return nil, err
	}
	summary.Records = records
	summary.Parsed = len(records)

	exportErr := r.export(failure.WithStage(ctx, "export"), records, csvPath, workbookPath, summary)
	summary.Elapsed = time.Since(start)

	logger.Info("extraction finished",
		logging.Int("discovered", summary.Discovered),
		logging.Int("parsed", summary.Parsed),
		logging.Int("skipped", len(summary.Skipped)),
		logging.Int("albums", len(summary.Albums)),
		logging.Float64("total_seconds", summary.TotalSeconds()),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, exportErr
}

func (r *Runner) enumerate(ctx context.Context, seq iter.Seq2[string, error], summary *Summary) ([]string, error) {
	logger := logging.WithContext(ctx, r.logger)
	var paths []string
	for path, err := range seq {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			logger.Warn("directory skipped", logging.Error(err))
			summary.DirectoryErrors = append(summary.DirectoryErrors, err.Error())
			continue
		}
		paths = append(paths, path)
	}
	logger.Debug("enumeration complete", logging.Int("files", len(paths)))
	return paths, nil
}

type readResult struct {
	raw tags.Raw
	err error
}

// readAll reads every path on at most cfg.Scan.Workers goroutines. Each
// result lands in the slot of its discovery index, so records come back in
// discovery order whatever the completion order.
func (r *Runner) readAll(ctx context.Context, paths []string, summary *Summary) ([]record.Record, error) {
	logger := logging.WithContext(ctx, r.logger)
	results := make([]readResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.Scan.Workers, 1))
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := r.reader.Read(path)
			if failure.IsFatal(err) {
				return err
			}
			results[i] = readResult{raw: raw, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := record.Options{TitleFromFilename: r.cfg.Tags.TitleFromFilename}
	records := make([]record.Record, 0, len(paths))
	for i, res := range results {
		if res.err != nil {
			reason := res.err.Error()
			var parseErr *tags.ParseError
			if errors.As(res.err, &parseErr) {
				reason = parseErr.Detail()
			}
			logger.Warn("file skipped",
				logging.String(logging.FieldPath, paths[i]),
				logging.String(logging.FieldReason, reason),
			)
			summary.Skipped = append(summary.Skipped, Skipped{Path: paths[i], Reason: reason})
			continue
		}
		records = append(records, record.Normalize(res.raw, opts))
	}
	return records, nil
}

// export writes both reports concurrently. Neither exporter cancels the
// other; their errors are joined.
func (r *Runner) export(ctx context.Context, records []record.Record, csvPath, workbookPath string, summary *Summary) error {
	logger := logging.WithContext(ctx, r.logger)
	sheets := workbook.Plan(records)
	for _, sheet := range sheets[1:] {
		summary.Albums = append(summary.Albums, Album{
			Name:         sheet.Album,
			Sheet:        sheet.Name,
			Tracks:       len(sheet.Records),
			TotalSeconds: sheet.TotalSeconds(),
		})
	}

	var csvErr, workbookErr error
	var g errgroup.Group
	g.Go(func() error {
		csvErr = flatfile.Write(csvPath, records, r.cfg.DelimiterRune())
		return csvErr
	})
	g.Go(func() error {
		workbookErr = workbook.Write(workbookPath, sheets)
		return workbookErr
	})
	_ = g.Wait()

	if csvErr != nil {
		logger.Error("flat file export failed", logging.String(logging.FieldPath, csvPath), logging.Error(csvErr))
	} else {
		summary.CSVPath = csvPath
		logger.Info("flat file written",
			logging.String(logging.FieldPath, csvPath),
			logging.Int("rows", len(records)),
		)
	}
	if workbookErr != nil {
		logger.Error("workbook export failed", logging.String(logging.FieldPath, workbookPath), logging.Error(workbookErr))
	} else {
		summary.WorkbookPath = workbookPath
		logger.Info("workbook written",
			logging.String(logging.FieldPath, workbookPath),
			logging.Int("sheets", len(sheets)),
		)
	}
	return errors.Join(csvErr, workbookErr)
}

// acquireLock takes an exclusive lock beside the workbook destination and
// returns its release function, which also removes the lock file.
func acquireLock(workbookPath string) (func(), error) {
	lockPath := workbookPath + lockSuffix
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrWrite, "lock", "create directory", filepath.Dir(lockPath), err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrWrite, "lock", "acquire", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", failure.ErrLocked, lockPath)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}

// Inspect reads and normalizes a single file without writing any report.
func (r *Runner) Inspect(path string) (tags.Raw, record.Record, error) {
	raw, err := r.reader.Read(path)
	if err != nil {
		return tags.Raw{}, record.Record{}, err
	}
	return raw, record.Normalize(raw, record.Options{TitleFromFilename: r.cfg.Tags.TitleFromFilename}), nil
}
