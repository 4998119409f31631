package tags

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"

	"tagreport/internal/logging"
)

func (r *Reader) readMP3(path string) (Raw, error) {
	raw, err := readGeneric(path)
	noTags := errors.Is(err, tag.ErrNoTagsFound)
	if err != nil && !noTags {
		return Raw{}, parseError(path, "read ID3 tags", err)
	}
	if noTags {
		raw = Raw{}
	}
	raw.Format = "MP3"

	frames, err := readID3v2Frames(path)
	if err != nil {
		r.logger.Debug("raw ID3v2 frames unavailable",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
	}
	if frames.track != "" {
		raw.Track = Some(frames.track)
	}

	if frames.lengthMillis > 0 {
		raw.Duration = Some(frames.lengthMillis / 1000)
		return raw, nil
	}

	scan, err := scanMPEG(path)
	switch {
	case scan.frames > 0:
		raw.Duration = Some(scan.seconds)
	case noTags:
		return Raw{}, parseError(path, "no tags or MPEG audio frames found", err)
	default:
		raw.Duration = Missing[float64]()
		r.logger.Debug("no MPEG frames found; duration unknown",
			logging.String(logging.FieldPath, path),
		)
	}
	return raw, nil
}

type id3v2Frames struct {
	track        string
	lengthMillis float64
}

// readID3v2Frames pulls the frames dhowden/tag does not expose verbatim: the
// TRCK text before integer conversion and the TLEN length in milliseconds.
func readID3v2Frames(path string) (id3v2Frames, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"TRCK", "TLEN"}})
	if err != nil {
		return id3v2Frames{}, err
	}
	defer t.Close()

	var frames id3v2Frames
	if !t.HasFrames() {
		return frames, nil
	}
	frames.track = strings.TrimSpace(strings.Trim(t.GetTextFrame("TRCK").Text, "\x00"))
	if text := strings.TrimSpace(strings.Trim(t.GetTextFrame("TLEN").Text, "\x00")); text != "" {
		if ms, err := strconv.ParseFloat(text, 64); err == nil && ms > 0 {
			frames.lengthMillis = ms
		}
	}
	return frames, nil
}
