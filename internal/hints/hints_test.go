package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they use t.Setenv and
//   swap the package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func TestForBrowserConnect_InCI(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForBrowserConnect()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q missing prefix", hint)
	}
	if !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("expected ROD_NO_SANDBOX suggestion in CI")
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("expected ROD_BROWSER_BIN suggestion")
	}
	if !strings.Contains(hint, "resortbill doctor") {
		t.Error("expected doctor suggestion")
	}
}

func TestForBrowserConnect_ConfiguredEnvironment(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	hint := ForBrowserConnect()

	if strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("should not suggest ROD_NO_SANDBOX when already set")
	}
	if strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("should not suggest ROD_BROWSER_BIN when already set")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"dreamy.yaml", "/home/u/.config/resortbill/dreamy.yaml"})
	if !strings.Contains(hint, "create /home/u/.config/resortbill/dreamy.yaml") {
		t.Errorf("hint %q should suggest user config path", hint)
	}

	hint = ForConfigNotFound(nil)
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q should mention --config", hint)
	}
}

func TestForLogoTooLarge(t *testing.T) {
	t.Parallel()

	if hint := ForLogoTooLarge(2 << 20); !strings.Contains(hint, "2 MB") {
		t.Errorf("hint %q should state the 2 MB limit", hint)
	}
}

func TestForRoomType(t *testing.T) {
	t.Parallel()

	if hint := ForRoomType(nil); hint != "" {
		t.Errorf("empty list should give no hint, got %q", hint)
	}
	if hint := ForRoomType([]string{"Room", "Cottage"}); !strings.Contains(hint, "Room, Cottage") {
		t.Errorf("hint %q should list room types", hint)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"timeout":   ForTimeout(),
		"dateRange": ForDateRange(),
		"outputDir": ForOutputDirectory(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint %q missing prefix", name, hint)
		}
	}
}
