package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadInputPrefersEval(t *testing.T) {
	input, label, err := readInput("1 + 1", []string{"ignored.austra"})
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if input != "1 + 1" || label != "<eval>" {
		t.Errorf("readInput = (%q, %q), want (%q, <eval>)", input, label, "1 + 1")
	}
}

func TestReadInputReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.austra")
	if err := os.WriteFile(path, []byte("2 * 3"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	input, label, err := readInput("", []string{path})
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if input != "2 * 3" || label != path {
		t.Errorf("readInput = (%q, %q), want (%q, %q)", input, label, "2 * 3", path)
	}
}

func TestReadInputMissingFileErrors(t *testing.T) {
	if _, _, err := readInput("", []string{"/nonexistent/path.austra"}); err == nil {
		t.Error("expected an error for a missing file")
	}
}
