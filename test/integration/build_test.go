//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/flutterkit-labs/flutterkit/internal/progress"
	"github.com/flutterkit-labs/flutterkit/internal/toolchain"
	"github.com/flutterkit-labs/flutterkit/internal/ui"
)

func newDispatcher(env *testEnv, out *bytes.Buffer, failFast bool) *toolchain.Dispatcher {
	theme := ui.Plain()
	return &toolchain.Dispatcher{
		Tools:    toolchain.DefaultTools(),
		Runner:   progress.New(out, theme, progress.DefaultInterval),
		Out:      out,
		Theme:    theme,
		Root:     env.ProjectDir,
		FailFast: failFast,
	}
}

// TestBuildSetupRunsEveryStep runs the full setup against fake binaries.
func TestBuildSetupRunsEveryStep(t *testing.T) {
	env := setupTestEnv(t)
	setupFlutterProject(t, env.ProjectDir, "shop_app")
	installFakeTools(t, env.BinDir)

	var out bytes.Buffer
	if _, err := newDispatcher(env, &out, false).Run(context.Background(), "setup"); err != nil {
		t.Fatalf("Run(setup): %v\n%s", err, out.String())
	}

	want := []string{
		"flutter clean",
		"flutter pub upgrade",
		"dart run build_runner build --delete-conflicting-outputs",
		"flutter gen-l10n",
		"flutter pub upgrade",
		"flutter analyze",
		"dart format .",
	}
	if got := readToolLog(t, env.ToolLog); !reflect.DeepEqual(got, want) {
		t.Errorf("invocations =\n%q\nwant\n%q", got, want)
	}
	if n := strings.Count(out.String(), ui.CheckGlyph); n < len(want) {
		t.Errorf("expected %d success glyphs, got %d:\n%s", len(want), n, out.String())
	}
}

// TestBuildFailureKeepsGoing reports a failed step but runs the rest.
func TestBuildFailureKeepsGoing(t *testing.T) {
	env := setupTestEnv(t)
	setupFlutterProject(t, env.ProjectDir, "shop_app")
	installFakeTools(t, env.BinDir)
	t.Setenv("FAKE_FAIL_ARG", "analyze")

	var out bytes.Buffer
	report, err := newDispatcher(env, &out, false).Run(context.Background(), "setup")
	if !errors.Is(err, toolchain.ErrStepsFailed) {
		t.Fatalf("expected ErrStepsFailed, got %v", err)
	}
	log := readToolLog(t, env.ToolLog)
	if log[len(log)-1] != "dart format ." {
		t.Errorf("last invocation = %q, want dart format", log[len(log)-1])
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].ExitCode != 1 {
		t.Fatalf("failed = %+v", failed)
	}
	if !strings.Contains(failed[0].Stderr, "simulated failure") {
		t.Errorf("stderr not captured: %q", failed[0].Stderr)
	}
	if !strings.Contains(out.String(), ui.CrossGlyph) {
		t.Errorf("missing failure glyph:\n%s", out.String())
	}
}

// TestBuildFailFast stops at the first failed step.
func TestBuildFailFast(t *testing.T) {
	env := setupTestEnv(t)
	setupFlutterProject(t, env.ProjectDir, "shop_app")
	installFakeTools(t, env.BinDir)
	t.Setenv("FAKE_FAIL_ARG", "clean")

	var out bytes.Buffer
	if _, err := newDispatcher(env, &out, true).Run(context.Background(), "cleanup"); err == nil {
		t.Fatal("expected error")
	}
	if got := readToolLog(t, env.ToolLog); !reflect.DeepEqual(got, []string{"flutter clean"}) {
		t.Errorf("invocations = %q", got)
	}
}

// TestBuildPodRunsInIOSDir runs the pod pipeline against a project with ios/.
func TestBuildPodRunsInIOSDir(t *testing.T) {
	env := setupTestEnv(t)
	setupFlutterProject(t, env.ProjectDir, "shop_app")
	installFakeTools(t, env.BinDir)
	writeFile(t, filepath.Join(env.ProjectDir, "ios", "Podfile.lock"), "PODS:\n")

	var out bytes.Buffer
	if _, err := newDispatcher(env, &out, false).Run(context.Background(), "pod"); err != nil {
		t.Fatalf("Run(pod): %v\n%s", err, out.String())
	}
	if got := readToolLog(t, env.ToolLog); !reflect.DeepEqual(got, []string{"pod repo update", "pod install"}) {
		t.Errorf("invocations = %q", got)
	}
	if !strings.Contains(out.String(), "Removing Podfile.lock") {
		t.Errorf("lock removal not shown:\n%s", out.String())
	}
}
