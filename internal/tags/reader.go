package tags

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tagreport/internal/logging"
)

// Extensions handled by dedicated readers. Other extensions fall back to the
// generic reader.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
)

// Reader extracts Raw tags from files on disk. It holds no per-file state and
// is safe for concurrent use.
type Reader struct {
	logger *slog.Logger
}

// NewReader constructs a Reader. A nil logger discards output.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logging.NewComponentLogger(logger, "tags")}
}

// Read parses the tags of one file. Any failure is returned as *ParseError,
// including a panic raised inside a decoder on malformed input.
func (r *Reader) Read(path string) (raw Raw, err error) {
	defer func() {
		if p := recover(); p != nil {
			raw = Raw{}
			err = parseError(path, "decoder panic", fmt.Errorf("%v", p))
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return Raw{}, parseError(path, "stat file", err)
	}
	if info.IsDir() {
		return Raw{}, parseError(path, "path is a directory", nil)
	}
	if info.Size() == 0 {
		return Raw{}, parseError(path, "empty file", nil)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		raw, err = r.readMP3(path)
	case ExtFLAC:
		raw, err = r.readFLAC(path)
	default:
		raw, err = r.readOther(path)
	}
	if err != nil {
		return Raw{}, err
	}
	raw.Path = path
	r.logger.Debug("tags read",
		logging.String(logging.FieldPath, path),
		logging.String("format", raw.Format),
		logging.String("duration", raw.Duration.String()),
	)
	return raw, nil
}

func (r *Reader) readOther(path string) (Raw, error) {
	raw, err := readGeneric(path)
	if err != nil {
		return Raw{}, parseError(path, "read tags", err)
	}
	return raw, nil
}

func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
