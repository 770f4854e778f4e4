package main

// Notes:
// - runPreview: we test stdout and file output, booking ID assignment and
//   the single-booking rule. Template content itself is covered by the root
//   package render tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunPreview - Preview command
// ---------------------------------------------------------------------------

func TestRunPreview_Stdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	booking := writeFile(t, dir, "asha.yaml", bookingYAML("Asha Rao"))

	env, stdout, stderr := testEnv(nil, nil)
	if code := runMain([]string{"resortbill", "preview", booking}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	html := stdout.String()
	for _, want := range []string{"mode-preview", "Asha Rao", "3 Nights, 2 Rooms"} {
		if !strings.Contains(html, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if !regexp.MustCompile(`DV-\d{6}-\d{3}`).MatchString(html) {
		t.Error("preview has no booking ID")
	}
}

func TestRunPreview_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	booking := writeFile(t, dir, "asha.yaml", bookingYAML("Asha")+"bookingId: DV-123456-789\n")
	outDir := filepath.Join(dir, "previews")

	env, stdout, stderr := testEnv(nil, nil)
	if code := runMain([]string{"resortbill", "preview", booking, "-o", outDir}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	want := filepath.Join(outDir, "DreamyVacations_DV-123456-789.html")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading %s: %v", want, err)
	}
	if !strings.Contains(string(data), "DV-123456-789") {
		t.Error("preview file missing booking ID")
	}
	if !strings.Contains(stdout.String(), "Created "+want) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunPreview_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", bookingYAML("A"))
	b := writeFile(t, dir, "b.yaml", bookingYAML("B"))
	noRoom := writeFile(t, dir, "c.yaml", strings.Replace(bookingYAML("C"), "roomType: Cottage\n", "", 1))

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no booking", nil, ExitIO},
		{"two bookings", []string{a, b}, ExitUsage},
		{"room type missing", []string{noRoom}, ExitUsage},
		{"bad asset path", []string{a, "--asset-path", filepath.Join(dir, "missing")}, ExitUsage},
		{"missing logo", []string{a, "--logo", filepath.Join(dir, "logo.png")}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv(nil, nil)
			code := runMain(append([]string{"resortbill", "preview"}, tt.args...), env)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
		})
	}
}
