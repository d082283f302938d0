//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // FLUTTERKIT_HOME
	ProjectDir string // a mock Flutter project
	BinDir     string // fake toolchain binaries, first on PATH
	ToolLog    string // every fake tool invocation is appended here
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so config and toolchain lookups are sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
		BinDir:     t.TempDir(),
	}
	env.ToolLog = filepath.Join(env.HomeDir, "tools.log")

	t.Setenv("FLUTTERKIT_HOME", env.HomeDir)
	t.Setenv("FAKE_TOOL_LOG", env.ToolLog)
	t.Setenv("FAKE_FAIL_ARG", "")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return env
}

// setupFlutterProject writes a minimal Flutter project with a presenter
// setup file into dir.
func setupFlutterProject(t *testing.T, dir, name string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "pubspec.yaml"), `name: `+name+`
description: A test app.
version: 1.0.0+1

environment:
  sdk: ">=3.0.0 <4.0.0"
`)
	writeFile(t, filepath.Join(dir, "lib", "main.dart"), "void main() {}\n")
	writeFile(t, filepath.Join(dir, "lib", "core", "di", "setup", "presenter_setup.dart"), `import 'package:get_it/get_it.dart';
import 'package:`+name+`/presentation/home/presenter/home_presenter.dart';

final GetIt serviceLocator = GetIt.instance;

class PresenterSetup {
  static Future<void> setup() async {
    serviceLocator
      ..registerLazySingleton(() => loadPresenter(HomePresenter()));
  }
}
`)
}

// installFakeTools writes shell scripts named flutter, dart and pod into
// binDir. Each appends "<name> <args>" to $FAKE_TOOL_LOG and exits 1 when its
// first argument equals $FAKE_FAIL_ARG.
func installFakeTools(t *testing.T, binDir string) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found, skipping")
	}

	script := `#!/bin/sh
echo "$(basename "$0") $*" >> "$FAKE_TOOL_LOG"
if [ -n "$FAKE_FAIL_ARG" ] && [ "$1" = "$FAKE_FAIL_ARG" ]; then
  echo "simulated failure" >&2
  exit 1
fi
exit 0
`
	for _, name := range []string{"flutter", "dart", "pod"} {
		path := filepath.Join(binDir, name)
		if err := os.WriteFile(path, []byte(script), 0755); err != nil {
			t.Fatalf("writing fake %s: %v", name, err)
		}
	}
}

// readToolLog returns the logged invocations in order.
func readToolLog(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading tool log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
