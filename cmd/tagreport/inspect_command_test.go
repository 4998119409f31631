package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"tagreport/internal/failure"
	"tagreport/internal/testsupport"
)

func TestInspectPrintsRecord(t *testing.T) {
	base := isolateEnv(t)
	path := filepath.Join(base, "song.mp3")
	testsupport.WriteMP3(t, path, testsupport.Track{Artist: "Someone", Title: "Tune", Track: "5/9", LengthMillis: 125000}, 1)

	out, _, err := runCLI(t, []string{"inspect", path}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Format: MP3")
	requireContains(t, out, "Tune")
	requireContains(t, out, "2:05")

	out, _, err = runCLI(t, []string{"inspect", path, "--json"}, "")
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}
	var rec struct {
		Title string `json:"title"`
		Track int    `json:"track"`
	}
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Title != "Tune" || rec.Track != 5 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestInspectUnreadableFile(t *testing.T) {
	base := isolateEnv(t)
	path := filepath.Join(base, "broken.mp3")
	testsupport.WriteGarbage(t, path)

	_, _, err := runCLI(t, []string{"inspect", path}, "")
	if !errors.Is(err, failure.ErrTagParse) {
		t.Fatalf("expected tag parse error, got %v", err)
	}
}
