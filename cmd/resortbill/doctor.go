package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	resortbill "github.com/alnah/go-resortbill"
)

// level grades a single doctor finding.
type level string

const (
	levelOK    level = "ok"
	levelWarn  level = "warn"
	levelError level = "error"
)

// Report sections, printed in this order.
const (
	areaBrowser = "Browser"
	areaHost    = "Host"
	areaProfile = "Resort profile"
	areaInputs  = "Bill inputs"
)

var doctorAreas = []string{areaBrowser, areaHost, areaProfile, areaInputs}

type finding struct {
	Area    string `json:"area"`
	Level   level  `json:"level"`
	Message string `json:"message"`
}

// doctorReport is what `resortbill doctor` prints or encodes.
type doctorReport struct {
	Status   string    `json:"status"` // ready, warnings, errors
	Findings []finding `json:"findings"`
}

func (r *doctorReport) add(area string, lv level, format string, args ...any) {
	r.Findings = append(r.Findings, finding{Area: area, Level: lv, Message: fmt.Sprintf(format, args...)})
}

func (r *doctorReport) count(lv level) int {
	n := 0
	for _, f := range r.Findings {
		if f.Level == lv {
			n++
		}
	}
	return n
}

// hostProbe reaches the machine; tests swap every field.
type hostProbe struct {
	getenv        func(string) string
	findChrome    func() (string, bool)
	stat          func(string) (os.FileInfo, error)
	chromeVersion func(bin string) (string, error)
	tempDir       func() string
}

func newHostProbe(env *Environment) hostProbe {
	return hostProbe{
		getenv:     env.Getenv,
		findChrome: launcher.LookPath,
		stat:       os.Stat,
		chromeVersion: func(bin string) (string, error) {
			out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
			return strings.TrimSpace(string(out)), err
		},
		tempDir: os.TempDir,
	}
}

// runDoctorCmd checks whether this machine can export bills.
func runDoctorCmd(args []string, env *Environment) error {
	f, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	report := runDoctor(newHostProbe(env), f.config)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == "errors" {
		return fmt.Errorf("%w: %d problem(s)", ErrNotReady, report.count(levelError))
	}
	return nil
}

func runDoctor(p hostProbe, configFlag string) *doctorReport {
	r := &doctorReport{}

	checkBrowser(r, p)
	checkHost(r, p)
	checkProfileAndInputs(r, p, configFlag)

	switch {
	case r.count(levelError) > 0:
		r.Status = "errors"
	case r.count(levelWarn) > 0:
		r.Status = "warnings"
	default:
		r.Status = "ready"
	}
	return r
}

func checkBrowser(r *doctorReport, p hostProbe) {
	bin := p.getenv("ROD_BROWSER_BIN")
	if bin == "" {
		var ok bool
		if bin, ok = p.findChrome(); !ok {
			r.add(areaBrowser, levelError, "no Chrome or Chromium found; install one or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := p.stat(bin); err != nil {
		r.add(areaBrowser, levelError, "browser binary missing: %s", bin)
		return
	}
	r.add(areaBrowser, levelOK, "binary: %s", bin)

	if v, err := p.chromeVersion(bin); err != nil {
		r.add(areaBrowser, levelWarn, "version unknown: %v", err)
	} else {
		r.add(areaBrowser, levelOK, "version: %s", v)
	}
}

func checkHost(r *doctorReport, p hostProbe) {
	r.add(areaHost, levelOK, "platform: %s/%s", runtime.GOOS, runtime.GOARCH)

	sandboxOff := p.getenv("ROD_NO_SANDBOX") == "1"
	if where := sandboxlessHost(p); where != "" {
		if sandboxOff {
			r.add(areaHost, levelOK, "%s with sandbox disabled", where)
		} else {
			r.add(areaHost, levelWarn, "%s detected; Chrome usually needs ROD_NO_SANDBOX=1 there", where)
		}
	}

	// Page markup is staged in the temp dir before capture.
	dir := p.tempDir()
	probe := filepath.Join(dir, "resortbill-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		r.add(areaHost, levelError, "temp directory not writable: %s", dir)
		return
	}
	_ = os.Remove(probe)
	r.add(areaHost, levelOK, "temp directory writable: %s", dir)
}

// sandboxlessHost names the container or CI runner we run in, or "".
func sandboxlessHost(p hostProbe) string {
	switch {
	case p.getenv("RESORTBILL_CONTAINER") == "1":
		return "container (RESORTBILL_CONTAINER)"
	case p.getenv("KUBERNETES_SERVICE_HOST") != "":
		return "Kubernetes pod"
	}
	if _, err := p.stat("/.dockerenv"); err == nil {
		return "Docker container"
	}
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		if p.getenv(v) != "" {
			return "CI runner"
		}
	}
	return ""
}

func checkProfileAndInputs(r *doctorReport, p hostProbe, configFlag string) {
	cfg, err := loadConfig(configFlag, loadEnvConfig(p.getenv))
	if err != nil {
		r.add(areaProfile, levelError, "%v", err)
		return
	}

	resort := resortFromConfig(cfg)
	r.add(areaProfile, levelOK, "%s (%s)", resort.Name, resort.Currency)

	renderer, err := resortbill.NewRenderer(
		resortbill.WithResort(resort),
		resortbill.WithAssetPath(cfg.Assets.BasePath),
	)
	switch {
	case err != nil:
		r.add(areaProfile, levelError, "bill template: %v", err)
	case cfg.Assets.BasePath != "":
		r.add(areaProfile, levelOK, "custom assets: %s (%d pages)", cfg.Assets.BasePath, renderer.PageCount())
	}

	if path := cfg.Assets.Logo; path != "" {
		if logo, err := resortbill.LoadLogoFile(path); err != nil {
			r.add(areaInputs, levelError, "default logo: %v", err)
		} else {
			r.add(areaInputs, levelOK, "default logo: %dx%d %s", logo.Width, logo.Height, logo.MIME)
		}
	}

	if dir := cfg.Output.DefaultDir; dir != "" {
		info, err := p.stat(dir)
		switch {
		case err != nil:
			r.add(areaInputs, levelWarn, "output directory %s does not exist yet; render will create it", dir)
		case !info.IsDir():
			r.add(areaInputs, levelError, "output path %s is a file, not a directory", dir)
		default:
			r.add(areaInputs, levelOK, "output directory: %s", dir)
		}
	}
}

var levelTags = map[level]string{levelOK: "[OK]", levelWarn: "[WARN]", levelError: "[ERROR]"}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "resortbill doctor")

	for _, area := range doctorAreas {
		header := false
		for _, f := range r.Findings {
			if f.Area != area {
				continue
			}
			if !header {
				fmt.Fprintf(w, "\n%s\n", area)
				header = true
			}
			fmt.Fprintf(w, "  %-7s %s\n", levelTags[f.Level], f.Message)
		}
	}
	fmt.Fprintln(w)

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to export bills")
	case "warnings":
		fmt.Fprintf(w, "Status: Ready with %d warning(s)\n", r.count(levelWarn))
	default:
		fmt.Fprintf(w, "Status: Not ready, %d problem(s)\n", r.count(levelError))
	}
}
