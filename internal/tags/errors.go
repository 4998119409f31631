package tags

import (
	"fmt"

	"tagreport/internal/failure"
)

// ParseError reports a file whose tags could not be read. It matches
// failure.ErrTagParse and its underlying cause with errors.Is.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Detail())
}

// Detail returns the reason without the path, for reports that already list
// the file.
func (e *ParseError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{failure.ErrTagParse}
	}
	return []error{failure.ErrTagParse, e.Err}
}

func parseError(path, reason string, err error) *ParseError {
	return &ParseError{Path: path, Reason: reason, Err: err}
}
