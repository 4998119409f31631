// Package flatfile writes records as a delimited text export, one row per
// record in the order supplied.
package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"

	"tagreport/internal/failure"
	"tagreport/internal/fileutil"
	"tagreport/internal/record"
)

// WriteError reports a failed export. It matches failure.ErrWrite.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write flat file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{failure.ErrWrite, e.Err}
}

// Write replaces path with a header row followed by one row per record.
// A zero delimiter means comma. The destination is only replaced when the
// whole export succeeds.
func Write(path string, records []record.Record, delimiter rune) error {
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, records, delimiter)
	})
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Encode streams the export to w.
func Encode(w io.Writer, records []record.Record, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(record.Columns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
