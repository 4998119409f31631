package tags

import (
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

const (
	vorbisComment     = "COMMENT"
	vorbisDescription = "DESCRIPTION"
)

func (r *Reader) readFLAC(path string) (Raw, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return Raw{}, parseError(path, "parse FLAC stream", err)
	}

	info, err := stream.GetStreamInfo()
	if err != nil {
		return Raw{}, parseError(path, "read STREAMINFO", err)
	}

	raw := Raw{Format: "FLAC", Duration: Missing[float64]()}
	if info.SampleRate > 0 && info.SampleCount > 0 {
		raw.Duration = Some(float64(info.SampleCount) / float64(info.SampleRate))
	}

	var comments []string
	for _, meta := range stream.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		block, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return Raw{}, parseError(path, "parse Vorbis comments", err)
		}
		comments = append(comments, block.Comments...)
	}

	raw.Artist = vorbisValue(comments, flacvorbis.FIELD_ARTIST)
	raw.Title = vorbisValue(comments, flacvorbis.FIELD_TITLE)
	raw.Album = vorbisValue(comments, flacvorbis.FIELD_ALBUM)
	raw.Genre = vorbisValue(comments, flacvorbis.FIELD_GENRE)
	raw.Track = vorbisValue(comments, flacvorbis.FIELD_TRACKNUMBER)
	raw.Comment = vorbisValue(comments, vorbisComment, vorbisDescription)
	return raw, nil
}

// vorbisValue returns the first comment whose field name matches one of the
// keys, compared case-insensitively since Vorbis field names ignore case.
func vorbisValue(comments []string, keys ...string) Value[string] {
	for _, key := range keys {
		for _, entry := range comments {
			name, value, ok := strings.Cut(entry, "=")
			if ok && strings.EqualFold(name, key) {
				return Some(value)
			}
		}
	}
	return Missing[string]()
}
