package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Platform", Platform},
		{"Engine", Engine},
		{"Server", Server},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		component string
		expected  string
	}{
		{"engine", Engine},
		{"server", Server},
		{"unknown", Platform},
		{"", Platform},
	}

	for _, tt := range tests {
		if got := ComponentVersion(tt.component); got != tt.expected {
			t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, got, tt.expected)
		}
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %v", info.GoVersion)
	}
	if !strings.HasPrefix(info.String(), "khwarizmi "+Platform) {
		t.Errorf("String() = %q", info.String())
	}
}
