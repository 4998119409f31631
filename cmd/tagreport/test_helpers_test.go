package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"tagreport/internal/testsupport"
)

// isolateEnv points HOME and the working directory at fresh temp dirs so no
// user configuration leaks into a test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("TAGREPORT_SCAN_DIR", "")
	t.Setenv("TAGREPORT_CSV_PATH", "")
	t.Setenv("TAGREPORT_WORKBOOK_PATH", "")
	t.Chdir(base)
	return base
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeAlbum creates two tagged tracks on one album, one on another, and an
// unreadable file.
func writeAlbum(t *testing.T, dir string) {
	t.Helper()
	testsupport.WriteMP3(t, filepath.Join(dir, "1-y.mp3"), testsupport.Track{
		Artist: "Artist", Title: "Y", Album: "A", Track: "2", LengthMillis: 125000,
	}, 2)
	testsupport.WriteMP3(t, filepath.Join(dir, "2-x.mp3"), testsupport.Track{
		Artist: "Artist", Title: "X", Album: "A", Track: "1", LengthMillis: 59000,
	}, 2)
	testsupport.WriteMP3(t, filepath.Join(dir, "3-z.mp3"), testsupport.Track{
		Artist: "Other", Title: "Z", Album: "B", Track: "1", LengthMillis: 60000,
	}, 2)
	testsupport.WriteGarbage(t, filepath.Join(dir, "4-broken.mp3"))
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
