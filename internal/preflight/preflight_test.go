package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"tagreport/internal/testsupport"
)

func TestCheckReadableDirectory_OK(t *testing.T) {
	result := CheckReadableDirectory("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckReadableDirectory_NotExist(t *testing.T) {
	result := CheckReadableDirectory("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckReadableDirectory_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckReadableDirectory("test", f).Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableDestination_MissingChild(t *testing.T) {
	result := CheckWritableDestination("out", filepath.Join(t.TempDir(), "a", "b"))
	if !result.Passed {
		t.Fatalf("expected pass when ancestor is writable, got: %s", result.Detail)
	}
}

func TestCheckWritableDestination_FileInPath(t *testing.T) {
	f := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckWritableDestination("out", filepath.Join(f, "sub")).Passed {
		t.Fatal("expected failure when a file blocks the path")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(cfg)
	if len(results) != 2 {
		t.Fatalf("expected scan + shared output checks, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Scan directory" {
		t.Fatalf("expected only the missing scan directory to fail, got %+v", failed)
	}

	if err := os.MkdirAll(cfg.Scan.Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if failed := Failed(RunAll(cfg)); len(failed) != 0 {
		t.Fatalf("unexpected failures %+v", failed)
	}
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
