// Package preflight checks that the filesystem paths a run depends on are
// usable before any work starts: the scan directory must be readable and the
// directories receiving the reports must be writable.
//
// The CLI "config validate" command renders these results; they never block
// a run on their own, since the pipeline reports the same failures with
// typed errors.
package preflight
