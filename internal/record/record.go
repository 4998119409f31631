// Package record turns raw tag results into the flat rows both exporters
// consume.
package record

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"tagreport/internal/tags"
	"tagreport/internal/textutil"
)

// MissingDuration is the display value used when a file reports no length.
const MissingDuration = "00:00"

// Columns names the exported fields in output order.
var Columns = []string{"Artist", "Title", "Duration", "Album", "Track", "Genre", "Filename", "Comment"}

// Record is the normalized metadata of one file. Records are plain values:
// every field is always populated (empty strings are valid), TrackNumber is
// never negative, and nothing modifies a Record after Normalize returns it.
type Record struct {
	Artist          string  `json:"artist"`
	Title           string  `json:"title"`
	DurationSeconds float64 `json:"duration_seconds"`
	DurationDisplay string  `json:"duration"`
	Album           string  `json:"album"`
	TrackNumber     int     `json:"track"`
	Genre           string  `json:"genre"`
	Filename        string  `json:"filename"`
	Comment         string  `json:"comment"`
}

// Options tunes normalization.
type Options struct {
	// TitleFromFilename replaces a missing title with one derived from the
	// file name. Present but empty titles are left alone.
	TitleFromFilename bool
}

// Normalize builds a Record from one reader result. It never fails.
func Normalize(raw tags.Raw, opts Options) Record {
	rec := Record{
		Artist:   text(raw.Artist),
		Title:    text(raw.Title),
		Album:    text(raw.Album),
		Genre:    text(raw.Genre),
		Comment:  text(raw.Comment),
		Filename: filename(raw.Path),
	}
	if !raw.Title.Present() && opts.TitleFromFilename {
		rec.Title = textutil.DeriveTitle(rec.Filename)
	}
	if value, ok := raw.Track.Get(); ok {
		rec.TrackNumber = ParseTrackNumber(value)
	}
	if seconds, ok := raw.Duration.Get(); ok && validDuration(seconds) {
		rec.DurationSeconds = seconds
		rec.DurationDisplay = FormatDuration(seconds)
	} else {
		rec.DurationDisplay = MissingDuration
	}
	return rec
}

// Row renders the record as strings in Columns order.
func (r Record) Row() []string {
	return []string{
		r.Artist,
		r.Title,
		r.DurationDisplay,
		r.Album,
		strconv.Itoa(r.TrackNumber),
		r.Genre,
		r.Filename,
		r.Comment,
	}
}

// Cells renders the record for typed spreadsheet cells; the track number
// stays numeric.
func (r Record) Cells() []any {
	return []any{
		r.Artist,
		r.Title,
		r.DurationDisplay,
		r.Album,
		r.TrackNumber,
		r.Genre,
		r.Filename,
		r.Comment,
	}
}

// FormatDuration renders whole seconds as M:SS. Minutes are not padded and
// there is no hour component, so 3725 seconds renders as "62:05".
func FormatDuration(seconds float64) string {
	if !validDuration(seconds) {
		return MissingDuration
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// ParseTrackNumber extracts the track position from tag text. "7", "07" and
// "7/12" all yield 7; anything without a leading non-negative integer yields 0.
func ParseTrackNumber(value string) int {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, "/"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func text(v tags.Value[string]) string {
	return textutil.NormalizeText(v.Or(""))
}

func filename(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "unknown"
	}
	return base
}

func validDuration(seconds float64) bool {
	return seconds >= 0 && !math.IsNaN(seconds) && !math.IsInf(seconds, 0)
}
