// Package textutil provides text processing helpers for tag values, sheet
// names, and column sizing.
//
// The primary use cases are:
//   - Normalizing raw tag text (NUL padding, Unicode NFC)
//   - Deriving a readable title from a file name
//   - Sanitizing strings into spreadsheet-safe sheet names
//   - Measuring the terminal/spreadsheet display width of a value
package textutil
