// Package pipeline runs one extraction: enumerate files, read their tags on
// a bounded worker pool, normalize the results in discovery order, and write
// the flat file and the workbook concurrently.
//
// A run holds a lock next to the workbook destination so two runs never
// write the same report at once. Files whose tags cannot be read are listed
// in the Summary and left out of both outputs.
package pipeline
