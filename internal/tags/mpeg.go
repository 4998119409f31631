package tags

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"
)

type mpegScan struct {
	frames  int
	seconds float64
}

// scanMPEG sums the duration of every MPEG audio frame after the ID3v2 tag.
// A truncated final frame ends the scan without failing it.
func scanMPEG(path string) (mpegScan, error) {
	file, err := os.Open(path)
	if err != nil {
		return mpegScan{}, err
	}
	defer file.Close()

	offset, err := id3v2TagSize(file)
	if err != nil {
		return mpegScan{}, err
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return mpegScan{}, err
	}

	decoder := mp3.NewDecoder(bufio.NewReader(file))
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
		count   int
	)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if count == 0 && !errors.Is(err, io.EOF) {
				return mpegScan{}, err
			}
			break
		}
		total += frame.Duration()
		count++
	}
	return mpegScan{frames: count, seconds: total.Seconds()}, nil
}

// id3v2TagSize returns the number of bytes occupied by a leading ID3v2 tag,
// including header and footer, or 0 when the file does not start with one.
func id3v2TagSize(r io.ReaderAt) (int64, error) {
	header := make([]byte, 10)
	n, err := r.ReadAt(header, 0)
	if n < len(header) {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}
	if string(header[:3]) != "ID3" {
		return 0, nil
	}
	size := int64(header[6]&0x7f)<<21 |
		int64(header[7]&0x7f)<<14 |
		int64(header[8]&0x7f)<<7 |
		int64(header[9]&0x7f)
	size += 10
	if header[5]&0x10 != 0 {
		size += 10
	}
	return size, nil
}
