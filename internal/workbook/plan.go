package workbook

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"tagreport/internal/record"
	"tagreport/internal/textutil"
)

const (
	// AllSongsSheet names the sheet that lists every record.
	AllSongsSheet = "All Songs"
	// NoAlbumSheet names the sheet for records without an album.
	NoAlbumSheet = "(No Album)"

	fallbackSheet = "Album"
	// Spreadsheet applications reserve this name.
	reservedSheet = "History"
)

// Sheet is one worksheet of the report.
type Sheet struct {
	Name string
	// Album is the exact grouping key; it is empty for the All Songs sheet and
	// for the group of records without an album.
	Album    string
	AllSongs bool
	Records  []record.Record
}

// TotalSeconds sums the durations of the sheet's records.
func (s Sheet) TotalSeconds() float64 {
	var total float64
	for _, rec := range s.Records {
		total += rec.DurationSeconds
	}
	return total
}

// Plan groups and orders records into sheets. The input slice is not
// modified; every sheet holds its own sorted copy.
func Plan(records []record.Record) []Sheet {
	all := slices.Clone(records)
	slices.SortStableFunc(all, func(a, b record.Record) int {
		if c := cmp.Compare(a.Album, b.Album); c != 0 {
			return c
		}
		return cmp.Compare(a.TrackNumber, b.TrackNumber)
	})

	groups := make(map[string][]record.Record)
	var albums []string
	for _, rec := range records {
		if _, ok := groups[rec.Album]; !ok {
			albums = append(albums, rec.Album)
		}
		groups[rec.Album] = append(groups[rec.Album], rec)
	}
	slices.Sort(albums)

	sheets := make([]Sheet, 0, len(albums)+1)
	sheets = append(sheets, Sheet{Name: AllSongsSheet, AllSongs: true, Records: all})

	names := newNameSet(AllSongsSheet, reservedSheet)
	for _, album := range albums {
		group := groups[album]
		slices.SortStableFunc(group, func(a, b record.Record) int {
			return cmp.Compare(a.TrackNumber, b.TrackNumber)
		})
		sheets = append(sheets, Sheet{
			Name:    names.claim(albumSheetBase(album)),
			Album:   album,
			Records: group,
		})
	}
	return sheets
}

func albumSheetBase(album string) string {
	if album == "" {
		return NoAlbumSheet
	}
	if name := textutil.SanitizeSheetName(album); name != "" {
		return name
	}
	return fallbackSheet
}

// nameSet hands out sheet names that are unique under case folding, which is
// how spreadsheet applications compare them.
type nameSet struct {
	fold cases.Caser
	used map[string]struct{}
}

func newNameSet(reserved ...string) *nameSet {
	s := &nameSet{fold: cases.Fold(), used: make(map[string]struct{})}
	for _, name := range reserved {
		s.used[s.fold.String(name)] = struct{}{}
	}
	return s
}

func (s *nameSet) taken(name string) bool {
	_, ok := s.used[s.fold.String(name)]
	return ok
}

// claim returns base when it is free, otherwise the first free "base (n)"
// for n >= 2, cutting base so the name fits the length limit.
func (s *nameSet) claim(base string) string {
	name := base
	for n := 2; s.taken(name); n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		room := textutil.MaxSheetNameLength - utf8.RuneCountInString(suffix)
		name = textutil.TruncateRunes(base, room) + suffix
	}
	s.used[s.fold.String(name)] = struct{}{}
	return name
}
