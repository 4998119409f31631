package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// Track describes the tags written into a fixture file. Empty strings are
// not written at all, so the reader reports those fields as missing.
type Track struct {
	Artist  string
	Title   string
	Album   string
	Genre   string
	Comment string
	Track   string
	// LengthMillis writes a TLEN frame when positive.
	LengthMillis int
}

// MPEG frame constants for an MPEG-1 Layer III, 128 kbit/s, 44.1 kHz stream.
const (
	mpegFrameSize    = 417
	mpegFrameSamples = 1152
	mpegSampleRate   = 44100
)

var mpegFrameHeader = []byte{0xFF, 0xFB, 0x90, 0x00}

// MPEGSeconds returns the audio length of n fixture frames.
func MPEGSeconds(frames int) float64 {
	return float64(frames*mpegFrameSamples) / mpegSampleRate
}

// WriteMP3 writes an ID3v2.4 tag for track followed by the requested number
// of silent MPEG frames. A zero-value Track with frames > 0 produces a file
// with audio and no tag.
func WriteMP3(t testing.TB, path string, track Track, frames int) {
	t.Helper()

	var buf bytes.Buffer
	if track != (Track{}) {
		tag := id3v2.NewEmptyTag()
		tag.SetVersion(4)
		if track.Artist != "" {
			tag.SetArtist(track.Artist)
		}
		if track.Title != "" {
			tag.SetTitle(track.Title)
		}
		if track.Album != "" {
			tag.SetAlbum(track.Album)
		}
		if track.Genre != "" {
			tag.SetGenre(track.Genre)
		}
		if track.Track != "" {
			tag.AddTextFrame("TRCK", tag.DefaultEncoding(), track.Track)
		}
		if track.LengthMillis > 0 {
			tag.AddTextFrame("TLEN", tag.DefaultEncoding(), strconv.Itoa(track.LengthMillis))
		}
		if track.Comment != "" {
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding: id3v2.EncodingUTF8,
				Language: "eng",
				Text:     track.Comment,
			})
		}
		if _, err := tag.WriteTo(&buf); err != nil {
			t.Fatalf("encode id3 tag for %s: %v", path, err)
		}
	}

	frame := make([]byte, mpegFrameSize)
	copy(frame, mpegFrameHeader)
	for range frames {
		buf.Write(frame)
	}
	writeBytes(t, path, buf.Bytes())
}

// flacFrame is a frame header carrying the fixed-blocksize sync code. The
// bytes after it are not decodable audio; only the sync code is checked.
var flacFrame = []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00}

// WriteFLAC writes a minimal FLAC stream: a STREAMINFO block declaring the
// given length, a Vorbis comment block built from track, and one frame
// header.
func WriteFLAC(t testing.TB, path string, track Track, seconds int) {
	t.Helper()
	buf := flacMetadata(track, seconds)
	buf.Write(flacFrame)
	writeBytes(t, path, buf.Bytes())
}

// WriteTruncatedFLAC writes the metadata of WriteFLAC with nothing after
// it, as left behind by an interrupted copy.
func WriteTruncatedFLAC(t testing.TB, path string, track Track, seconds int) {
	t.Helper()
	buf := flacMetadata(track, seconds)
	writeBytes(t, path, buf.Bytes())
}

func flacMetadata(track Track, seconds int) *bytes.Buffer {
	const sampleRate = 44100
	streamInfo := make([]byte, 34)
	binary.BigEndian.PutUint16(streamInfo[0:], 4096)
	binary.BigEndian.PutUint16(streamInfo[2:], 4096)
	// 20-bit sample rate, 3-bit channels-1, 5-bit bits-per-sample-1, then a
	// 36-bit total sample count.
	samples := uint64(seconds) * sampleRate
	packed := uint64(sampleRate)<<44 | uint64(1)<<41 | uint64(15)<<36 | samples&0xFFFFFFFFF
	binary.BigEndian.PutUint64(streamInfo[10:], packed)

	var comments []string
	add := func(key, value string) {
		if value != "" {
			comments = append(comments, key+"="+value)
		}
	}
	add("ARTIST", track.Artist)
	add("TITLE", track.Title)
	add("ALBUM", track.Album)
	add("GENRE", track.Genre)
	add("TRACKNUMBER", track.Track)
	add("COMMENT", track.Comment)

	var vorbis bytes.Buffer
	vendor := "tagreport fixtures"
	_ = binary.Write(&vorbis, binary.LittleEndian, uint32(len(vendor)))
	vorbis.WriteString(vendor)
	_ = binary.Write(&vorbis, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		_ = binary.Write(&vorbis, binary.LittleEndian, uint32(len(c)))
		vorbis.WriteString(c)
	}

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	writeBlockHeader(&buf, 0, false, len(streamInfo))
	buf.Write(streamInfo)
	writeBlockHeader(&buf, 4, true, vorbis.Len())
	buf.Write(vorbis.Bytes())
	return &buf
}

func writeBlockHeader(buf *bytes.Buffer, blockType byte, last bool, length int) {
	if last {
		blockType |= 0x80
	}
	buf.WriteByte(blockType)
	buf.WriteByte(byte(length >> 16))
	buf.WriteByte(byte(length >> 8))
	buf.WriteByte(byte(length))
}

// WriteGarbage writes a non-empty file that carries neither tags nor MPEG
// frame sync bytes.
func WriteGarbage(t testing.TB, path string) {
	t.Helper()
	writeBytes(t, path, bytes.Repeat([]byte("this is not audio data\n"), 64))
}

// WriteFile creates path with the given content, making parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()
	writeBytes(t, path, content)
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
