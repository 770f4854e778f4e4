package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q should end with .html", path)
	}
	if !strings.Contains(filepath.Base(path), "resortbill-") {
		t.Errorf("path %q should carry resortbill prefix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q", data)
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup should remove the file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  string
		want error
	}{
		{"empty", "", ErrExtensionEmpty},
		{"slash", "../html", ErrExtensionPathTraversal},
		{"backslash", `a\b`, ErrExtensionPathTraversal},
		{"null byte", "ht\x00ml", ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := WriteTempFile("x", tt.ext)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFileAndDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "bill.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if !DirExists(dir) {
		t.Error("DirExists(dir) = false")
	}
	if DirExists(file) {
		t.Error("DirExists(file) = true")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestSafeFilePart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"DV-123456-042", "DV-123456-042"},
		{"a/b\\c", "a_b_c"},
		{"../etc", "_etc"},
		{"", "_"},
		{"Dreamy Vacations", "Dreamy_Vacations"},
	}

	for _, tt := range tests {
		if got := SafeFilePart(tt.in); got != tt.want {
			t.Errorf("SafeFilePart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"empty target uses name", "", "bill.pdf"},
		{"explicit file", "out/custom.pdf", "out/custom.pdf"},
		{"explicit file uppercase ext", "out/CUSTOM.PDF", "out/CUSTOM.PDF"},
		{"directory", "out", filepath.Join("out", "bill.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveOutputPath(tt.target, "bill.pdf", ".pdf"); got != tt.want {
				t.Errorf("ResolveOutputPath(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	if IsFilePath("dreamy") {
		t.Error("name should not be a path")
	}
	if !IsFilePath("./dreamy.yaml") {
		t.Error("relative path should be a path")
	}
}
