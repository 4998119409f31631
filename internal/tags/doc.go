// Package tags reads embedded metadata from audio files.
//
// Reader.Read dispatches on the file extension:
//
//   - MP3: ID3v1/ID3v2 text frames through github.com/dhowden/tag, the raw
//     TRCK and TLEN frames through github.com/bogem/id3v2, and an MPEG frame
//     scan (github.com/tcolgate/mp3) when no TLEN frame carries the length.
//   - FLAC: STREAMINFO and Vorbis comments through github.com/go-flac.
//   - Anything else: text fields through github.com/dhowden/tag; the duration
//     is reported missing.
//
// Every field of Raw is a Value so callers can tell a missing tag from one
// that is present but empty. Failures are returned as *ParseError, which
// matches failure.ErrTagParse; callers are expected to skip the file and move
// on.
package tags
