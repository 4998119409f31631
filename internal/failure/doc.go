// Package failure defines the error markers shared by the tagreport pipeline.
//
// Each stage wraps its errors with one of the exported sentinels so callers can
// classify a failure with errors.Is without knowing which package produced it:
// a missing scan directory aborts the run, a tag parse error only skips the
// offending file, and a write error is fatal for one exporter only.
package failure
