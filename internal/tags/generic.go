package tags

import (
	"os"
	"strconv"

	"github.com/dhowden/tag"
)

// Raw metadata keys reported by dhowden/tag for each field, covering ID3v2.2,
// ID3v2.3/4, ID3v1, Vorbis comments, and MP4 atoms. A key being present means
// the tag exists even when its text is empty.
var (
	artistKeys  = []string{"TPE1", "TP1", "artist", "\xa9ART"}
	titleKeys   = []string{"TIT2", "TT2", "title", "\xa9nam"}
	albumKeys   = []string{"TALB", "TAL", "album", "\xa9alb"}
	genreKeys   = []string{"TCON", "TCO", "genre", "\xa9gen", "gnre"}
	commentKeys = []string{"COMM", "COM", "comment", "\xa9cmt"}
	trackKeys   = []string{"TRCK", "TRK", "tracknumber", "track", "trkn"}
)

func readGeneric(path string) (Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return Raw{}, err
	}
	defer file.Close()

	m, err := tag.ReadFrom(file)
	if err != nil {
		return Raw{}, err
	}
	return fromMetadata(m), nil
}

func fromMetadata(m tag.Metadata) Raw {
	raw := m.Raw()
	out := Raw{
		Format:   string(m.FileType()),
		Artist:   textValue(m.Artist(), raw, artistKeys),
		Title:    textValue(m.Title(), raw, titleKeys),
		Album:    textValue(m.Album(), raw, albumKeys),
		Genre:    textValue(m.Genre(), raw, genreKeys),
		Comment:  textValue(m.Comment(), raw, commentKeys),
		Duration: Missing[float64](),
	}
	if text, ok := lookupRaw(raw, trackKeys); ok && text != "" {
		out.Track = Some(text)
	} else if n, _ := m.Track(); n > 0 {
		out.Track = Some(strconv.Itoa(n))
	} else if ok {
		out.Track = Some("")
	}
	if out.Format == "" || out.Format == string(tag.UnknownFileType) {
		out.Format = string(m.Format())
	}
	return out
}

func textValue(value string, raw map[string]interface{}, keys []string) Value[string] {
	if value != "" {
		return Some(value)
	}
	if _, ok := lookupRaw(raw, keys); ok {
		return Some("")
	}
	return Missing[string]()
}

func lookupRaw(raw map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			return describe(v), true
		}
	}
	return "", false
}
