package main

// Notes:
// - runDoctor: the host is reached only through hostProbe, so no real
//   Chrome lookup or --version call happens.
// - The temp directory check writes into a t.TempDir() standing in for
//   os.TempDir().
// - Profile and input checks read real files from t.TempDir().

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fakeChrome = "/usr/bin/chromium"

// fakeProbe returns a healthy host with only the given variables set.
func fakeProbe(t *testing.T, vars map[string]string) hostProbe {
	t.Helper()
	tmp := t.TempDir()
	return hostProbe{
		getenv:     func(k string) string { return vars[k] },
		findChrome: func() (string, bool) { return fakeChrome, true },
		stat: func(p string) (os.FileInfo, error) {
			switch p {
			case fakeChrome, vars["ROD_BROWSER_BIN"]:
				return os.Stat(tmp)
			case "/.dockerenv":
				return nil, os.ErrNotExist
			}
			return os.Stat(p)
		},
		chromeVersion: func(string) (string, error) { return "Chromium 120.0", nil },
		tempDir:       func() string { return tmp },
	}
}

func messages(r *doctorReport, lv level) string {
	var out []string
	for _, f := range r.Findings {
		if f.Level == lv {
			out = append(out, f.Area+": "+f.Message)
		}
	}
	return strings.Join(out, "\n")
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vars       func(t *testing.T) map[string]string
		mutate     func(t *testing.T, p *hostProbe)
		wantStatus string
		wantLevel  level
		wantIn     string
	}{
		{
			name:       "healthy host",
			wantStatus: "ready",
			wantLevel:  levelOK,
			wantIn:     "Resort profile: Dreamy Vacations (₹)",
		},
		{
			name: "chrome missing",
			mutate: func(_ *testing.T, p *hostProbe) {
				p.findChrome = func() (string, bool) { return "", false }
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "no Chrome or Chromium found",
		},
		{
			name: "browser bin points nowhere",
			vars: func(*testing.T) map[string]string {
				return map[string]string{"ROD_BROWSER_BIN": "/opt/missing/chrome"}
			},
			mutate: func(_ *testing.T, p *hostProbe) {
				p.stat = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "browser binary missing: /opt/missing/chrome",
		},
		{
			name: "version unavailable",
			mutate: func(_ *testing.T, p *hostProbe) {
				p.chromeVersion = func(string) (string, error) { return "", errFake }
			},
			wantStatus: "warnings",
			wantLevel:  levelWarn,
			wantIn:     "version unknown",
		},
		{
			name:       "CI runner without sandbox override",
			vars:       func(*testing.T) map[string]string { return map[string]string{"GITHUB_ACTIONS": "true"} },
			wantStatus: "warnings",
			wantLevel:  levelWarn,
			wantIn:     "CI runner detected",
		},
		{
			name: "container with sandbox disabled",
			vars: func(*testing.T) map[string]string {
				return map[string]string{"RESORTBILL_CONTAINER": "1", "ROD_NO_SANDBOX": "1"}
			},
			wantStatus: "ready",
			wantLevel:  levelOK,
			wantIn:     "container (RESORTBILL_CONTAINER) with sandbox disabled",
		},
		{
			name: "temp not writable",
			mutate: func(t *testing.T, p *hostProbe) {
				missing := filepath.Join(t.TempDir(), "gone")
				p.tempDir = func() string { return missing }
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "temp directory not writable",
		},
		{
			name: "broken resort profile",
			vars: func(t *testing.T) map[string]string {
				return map[string]string{"RESORTBILL_CONFIG": writeFile(t, t.TempDir(), "bad.yaml", "resort: [not, a, map]\n")}
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "loading config",
		},
		{
			name: "missing asset directory",
			vars: func(t *testing.T) map[string]string {
				return map[string]string{"RESORTBILL_ASSET_PATH": filepath.Join(t.TempDir(), "nope")}
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "bill template",
		},
		{
			name: "default logo loads",
			vars: func(t *testing.T) map[string]string {
				return map[string]string{"RESORTBILL_LOGO": writePNG(t, t.TempDir(), "logo.png", 40, 20)}
			},
			wantStatus: "ready",
			wantLevel:  levelOK,
			wantIn:     "default logo: 40x20 image/png",
		},
		{
			name: "default logo is not an image",
			vars: func(t *testing.T) map[string]string {
				return map[string]string{"RESORTBILL_LOGO": writeFile(t, t.TempDir(), "logo.png", "hello")}
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "default logo",
		},
		{
			name: "output directory not created yet",
			vars: func(t *testing.T) map[string]string {
				return map[string]string{"RESORTBILL_OUTPUT_DIR": filepath.Join(t.TempDir(), "bills")}
			},
			wantStatus: "warnings",
			wantLevel:  levelWarn,
			wantIn:     "render will create it",
		},
		{
			name: "output directory is a file",
			vars: func(t *testing.T) map[string]string {
				return map[string]string{"RESORTBILL_OUTPUT_DIR": writeFile(t, t.TempDir(), "bills", "x")}
			},
			wantStatus: "errors",
			wantLevel:  levelError,
			wantIn:     "is a file, not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			vars := map[string]string{}
			if tt.vars != nil {
				vars = tt.vars(t)
			}
			p := fakeProbe(t, vars)
			if tt.mutate != nil {
				tt.mutate(t, &p)
			}
			r := runDoctor(p, "")

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q\nwarnings:\n%s\nerrors:\n%s",
					r.Status, tt.wantStatus, messages(r, levelWarn), messages(r, levelError))
			}
			if got := messages(r, tt.wantLevel); !strings.Contains(got, tt.wantIn) {
				t.Errorf("%s findings = %q, want %q", tt.wantLevel, got, tt.wantIn)
			}
		})
	}
}

func TestRunDoctor_ConfigFlagBeatsEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flagCfg := writeFile(t, dir, "hill.yaml", "resort:\n  name: Hill Top Stay\n")
	envCfg := writeFile(t, dir, "bad.yaml", "resort: [not, a, map]\n")

	r := runDoctor(fakeProbe(t, map[string]string{"RESORTBILL_CONFIG": envCfg}), flagCfg)
	if r.Status != "ready" {
		t.Fatalf("Status = %q, errors:\n%s", r.Status, messages(r, levelError))
	}
	if !strings.Contains(messages(r, levelOK), "Hill Top Stay") {
		t.Errorf("profile not reported:\n%s", messages(r, levelOK))
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Flags, output format and exit status
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(nil, nil)
		if err := runDoctorCmd([]string{"--nope"}, env); !errors.Is(err, ErrInvalidFlag) {
			t.Errorf("runDoctorCmd() error = %v, want ErrInvalidFlag", err)
		}
	})

	t.Run("positional argument", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(nil, nil)
		if err := runDoctorCmd([]string{"booking.yaml"}, env); !errors.Is(err, ErrInvalidFlag) {
			t.Errorf("runDoctorCmd() error = %v, want ErrInvalidFlag", err)
		}
	})

	t.Run("broken profile reports not ready as JSON", func(t *testing.T) {
		t.Parallel()

		cfg := writeFile(t, t.TempDir(), "bad.yaml", "resort: [not, a, map]\n")
		env, stdout, _ := testEnv(nil, nil)

		err := runDoctorCmd([]string{"--json", "-c", cfg}, env)
		if !errors.Is(err, ErrNotReady) {
			t.Fatalf("runDoctorCmd() error = %v, want ErrNotReady", err)
		}
		var r doctorReport
		if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
			t.Fatalf("stdout is not JSON: %v\n%s", err, stdout.String())
		}
		if r.Status != "errors" || !strings.Contains(messages(&r, levelError), "loading config") {
			t.Errorf("report = %+v", r)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintDoctorReport - Human-readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorReport(t *testing.T) {
	t.Parallel()

	r := &doctorReport{Status: "errors"}
	r.add(areaInputs, levelError, "default logo: too big")
	r.add(areaBrowser, levelOK, "binary: %s", fakeChrome)
	r.add(areaHost, levelWarn, "CI runner detected")

	var buf bytes.Buffer
	printDoctorReport(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"resortbill doctor",
		"[OK]    binary: /usr/bin/chromium",
		"[WARN]  CI runner detected",
		"[ERROR] default logo: too big",
		"Status: Not ready, 1 problem(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, areaProfile) {
		t.Error("empty section printed")
	}
	if strings.Index(out, areaBrowser) > strings.Index(out, areaInputs) {
		t.Errorf("sections out of order:\n%s", out)
	}
}

func TestPrintDoctorReport_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		warns  int
		want   string
	}{
		{"ready", 0, "Status: Ready to export bills"},
		{"warnings", 2, "Status: Ready with 2 warning(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			t.Parallel()

			r := &doctorReport{Status: tt.status}
			for range tt.warns {
				r.add(areaHost, levelWarn, "w")
			}
			var buf bytes.Buffer
			printDoctorReport(&buf, r)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q\n%s", tt.want, buf.String())
			}
		})
	}
}
