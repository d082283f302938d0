package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	dartVersionLine    = regexp.MustCompile(`Dart SDK version:\s*(\d+\.\d+\.\d+(?:-[0-9A-Za-z.\-]+)?)`)
	flutterVersionLine = regexp.MustCompile(`Flutter\s+(\d+\.\d+\.\d+(?:-[0-9A-Za-z.\-]+)?)`)
)

// ParseDartVersion extracts the SDK version from `dart --version` output.
func ParseDartVersion(output string) (*semver.Version, error) {
	return parseVersion(dartVersionLine, "dart", output)
}

// ParseFlutterVersion extracts the framework version from `flutter --version` output.
func ParseFlutterVersion(output string) (*semver.Version, error) {
	return parseVersion(flutterVersionLine, "flutter", output)
}

func parseVersion(re *regexp.Regexp, tool, output string) (*semver.Version, error) {
	m := re.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no %s version found in %q", tool, strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing %s version %q: %w", tool, m[1], err)
	}
	return v, nil
}

// SatisfiesSDK reports whether version meets a pubspec SDK constraint such as
// ">=3.0.0 <4.0.0" or "^3.4.0".
func SatisfiesSDK(constraint string, version *semver.Version) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing SDK constraint %q: %w", constraint, err)
	}
	return c.Check(version), nil
}

// AppVersion parses a pubspec version such as "1.2.3+4".
func AppVersion(version string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing app version %q: %w", version, err)
	}
	return v, nil
}

// InstalledVersion runs `<bin> --version` and parses the output with parse.
func InstalledVersion(ctx context.Context, bin string, parse func(string) (*semver.Version, error)) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", bin, err)
	}
	return parse(string(out))
}

// ToolStatus reports whether a toolchain binary is on PATH.
type ToolStatus struct {
	Name  string
	Bin   string
	Path  string
	Found bool
}

// LookupTools resolves each configured binary.
func LookupTools(t Tools) []ToolStatus {
	entries := []struct{ name, bin string }{
		{"flutter", t.Flutter},
		{"dart", t.Dart},
		{"pod", t.Pod},
	}
	var statuses []ToolStatus
	for _, e := range entries {
		st := ToolStatus{Name: e.name, Bin: e.bin}
		if p, err := exec.LookPath(e.bin); err == nil {
			st.Path = p
			st.Found = true
		}
		statuses = append(statuses, st)
	}
	return statuses
}
