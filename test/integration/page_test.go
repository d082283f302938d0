//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flutterkit-labs/flutterkit/internal/config"
	"github.com/flutterkit-labs/flutterkit/internal/project"
	"github.com/flutterkit-labs/flutterkit/internal/registrar"
	"github.com/flutterkit-labs/flutterkit/internal/scaffold"
)

// TestFullFlowCreatePage tests the complete page flow:
// resolve project name -> render templates -> register presenter.
func TestFullFlowCreatePage(t *testing.T) {
	env := setupTestEnv(t)
	setupFlutterProject(t, env.ProjectDir, "shop_app")
	config.Load(env.ProjectDir)
	settings := config.Current()

	res, err := project.Resolve(env.ProjectDir, project.ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Name != "shop_app" || res.Warning != "" {
		t.Fatalf("Resolve = %+v", res)
	}

	data, err := scaffold.NewPageData(res.Name, "Login")
	if err != nil {
		t.Fatalf("NewPageData: %v", err)
	}
	if _, err := scaffold.Generate(data, env.ProjectDir); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	pageDir := filepath.Join(env.ProjectDir, "lib", "presentation", "login")
	assertDirExists(t, filepath.Join(pageDir, "widgets"))
	assertFileContains(t, filepath.Join(pageDir, "presenter", "login_presenter.dart"), "class LoginPresenter")
	assertFileContains(t, filepath.Join(pageDir, "presenter", "login_presenter.dart"),
		"package:shop_app/presentation/login/presenter/login_ui_state.dart")
	assertFileExists(t, filepath.Join(pageDir, "presenter", "login_ui_state.dart"))
	assertFileContains(t, filepath.Join(pageDir, "ui", "login_page.dart"), "class LoginPage")

	registry := filepath.Join(env.ProjectDir, settings.RegistryPath)
	patcher := &registrar.Patcher{Path: registry, SetupFunc: settings.SetupFunc}
	reg := registrar.PresenterRegistration(data.PresenterImport(), data.ClassPrefix)

	out, err := patcher.Apply(reg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !out.ImportAdded || !out.Registered {
		t.Errorf("Apply = %+v, want import and registration", out)
	}
	assertFileContains(t, registry, "import 'package:shop_app/presentation/login/presenter/login_presenter.dart';")
	assertFileContains(t, registry, "..registerLazySingleton(() => loadPresenter(LoginPresenter()))")

	// Generating the same page again leaves the registry alone.
	before, _ := os.ReadFile(registry)
	again, err := patcher.Apply(reg)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if !again.AlreadyPresent {
		t.Errorf("second Apply = %+v, want AlreadyPresent", again)
	}
	after, _ := os.ReadFile(registry)
	if string(before) != string(after) {
		t.Error("registry changed on second Apply")
	}
}

// TestFullFlowDirectoryNameFallback uses the directory name when pubspec.yaml
// is missing but the project has a lib/ directory.
func TestFullFlowDirectoryNameFallback(t *testing.T) {
	env := setupTestEnv(t)
	root := filepath.Join(env.ProjectDir, "wallet")
	writeFile(t, filepath.Join(root, "lib", "main.dart"), "void main() {}\n")

	res, err := project.Resolve(root, project.ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Name != "wallet" || !res.FromDir || res.Warning == "" {
		t.Fatalf("Resolve = %+v", res)
	}

	data, err := scaffold.NewPageData(res.Name, "settings")
	if err != nil {
		t.Fatalf("NewPageData: %v", err)
	}
	if _, err := scaffold.Generate(data, root); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	assertFileContains(t, filepath.Join(root, "lib", "presentation", "settings", "presenter", "settings_presenter.dart"),
		"package:wallet/core/base/base_presenter.dart")

	// No registry file: the patch is skipped, the page is still there.
	patcher := &registrar.Patcher{Path: filepath.Join(root, "lib", "core", "di", "setup", "presenter_setup.dart")}
	_, err = patcher.Apply(registrar.PresenterRegistration(data.PresenterImport(), data.ClassPrefix))
	if !errors.Is(err, registrar.ErrPatchSkipped) {
		t.Errorf("Apply error = %v, want ErrPatchSkipped", err)
	}
}

// TestFullFlowUnrecognizedProject fails when no project marker is present.
func TestFullFlowUnrecognizedProject(t *testing.T) {
	env := setupTestEnv(t)
	_, err := project.Resolve(env.ProjectDir, project.ResolveOptions{})
	if !errors.Is(err, project.ErrProjectNotRecognized) {
		t.Errorf("Resolve error = %v, want ErrProjectNotRecognized", err)
	}
}
