package toolchain

import (
	"path/filepath"

	"github.com/flutterkit-labs/flutterkit/internal/progress"
)

// Tools names the toolchain binaries. Values may be bare names resolved on
// PATH or absolute paths.
type Tools struct {
	Flutter string
	Dart    string
	Pod     string
}

// DefaultTools returns the binaries resolved from PATH.
func DefaultTools() Tools {
	return Tools{Flutter: "flutter", Dart: "dart", Pod: "pod"}
}

// IOSDir is the directory CocoaPods commands run in.
const IOSDir = "ios"

func (t Tools) flutter(desc string, args ...string) progress.Step {
	return progress.Step{Description: desc, Name: t.Flutter, Args: args}
}

func (t Tools) Clean() progress.Step { return t.flutter("Cleaning project...", "clean") }

func (t Tools) PubGet() progress.Step { return t.flutter("Getting dependencies...", "pub", "get") }

func (t Tools) PubUpgrade(desc string) progress.Step {
	return t.flutter(desc, "pub", "upgrade")
}

func (t Tools) BuildRunner(desc string) progress.Step {
	return progress.Step{
		Description: desc,
		Name:        t.Dart,
		Args:        []string{"run", "build_runner", "build", "--delete-conflicting-outputs"},
	}
}

func (t Tools) GenL10n(desc string) progress.Step { return t.flutter(desc, "gen-l10n") }

func (t Tools) BuildAPK() progress.Step {
	return t.flutter("Building APK...",
		"build", "apk", "--release", "--obfuscate", "--target-platform", "android-arm64", "--split-debug-info=./")
}

func (t Tools) BuildAAB() progress.Step {
	return t.flutter("Building AAB...",
		"build", "appbundle", "--release", "--obfuscate", "--split-debug-info=./")
}

func (t Tools) Analyze() progress.Step { return t.flutter("Analyzing code...", "analyze") }

func (t Tools) Format() progress.Step {
	return progress.Step{Description: "Formatting code...", Name: t.Dart, Args: []string{"format", "."}}
}

func (t Tools) CacheRepair() progress.Step {
	return t.flutter("Repairing pub cache...", "pub", "cache", "repair")
}

func (t Tools) Install() progress.Step {
	return t.flutter("Installing on device...", "install", "--release")
}

func (t Tools) PodRepoUpdate(root string) progress.Step {
	return progress.Step{
		Description: "Updating pod repository",
		Name:        t.Pod,
		Args:        []string{"repo", "update"},
		Dir:         filepath.Join(root, IOSDir),
	}
}

func (t Tools) PodInstall(root string) progress.Step {
	return progress.Step{
		Description: "Installing pods",
		Name:        t.Pod,
		Args:        []string{"install"},
		Dir:         filepath.Join(root, IOSDir),
	}
}
