package hints

// Notes:
// - ForCJKFont tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(k, "")
	}
}

func TestForCJKFont(t *testing.T) {
	tests := []struct {
		name        string
		ci          bool
		container   bool
		wantInstall bool
	}{
		{name: "desktop", wantInstall: false},
		{name: "in CI", ci: true, wantInstall: true},
		{name: "in container", container: true, wantInstall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := IsInContainer
			defer func() { IsInContainer = orig }()
			IsInContainer = func() bool { return tt.container }

			clearCI(t)
			if tt.ci {
				t.Setenv("CI", "true")
			}

			hint := ForCJKFont()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", hint)
			}
			if !strings.Contains(hint, "--cjk-font") {
				t.Error("expected --cjk-font suggestion")
			}
			if got := strings.Contains(hint, "fonts-ipaexfont"); got != tt.wantInstall {
				t.Errorf("install suggestion = %v, want %v (hint %q)", got, tt.wantInstall, hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with user config path",
			paths:    []string{"foo.yaml", "/home/u/.config/go-mdexport/foo.yaml"},
			contains: "or create /home/u/.config/go-mdexport/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForCodeStyle(t *testing.T) {
	if hint := ForCodeStyle(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	hint := ForCodeStyle([]string{"github", "monokai"})
	if !strings.Contains(hint, "github, monokai") {
		t.Errorf("expected style list, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	hints := []string{
		ForOutputDirectory(),
		ForFormat(),
		ForCodeStyle([]string{"github"}),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
