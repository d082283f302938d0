package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/flutterkit-labs/flutterkit/internal/branding"
	"github.com/flutterkit-labs/flutterkit/internal/project"
	"github.com/flutterkit-labs/flutterkit/internal/registrar"
	"github.com/flutterkit-labs/flutterkit/internal/scaffold"
	"github.com/flutterkit-labs/flutterkit/internal/ui"
	"github.com/spf13/cobra"
)

var errPageNameRequired = errors.New("page name is required")

// newPageCommand returns the page generator. It backs both "flutterkit page"
// and the standalone create-page binary.
func newPageCommand(use string) *cobra.Command {
	var strictName bool

	cmd := &cobra.Command{
		Use:   use + " <page_name>",
		Short: "Create page structure",
		Long: `Create a presentation-layer page under lib/presentation/<page_name> with a
presenter, a UI state and a page widget, then register the presenter in the
dependency-injection setup file when it can be patched safely.`,
		Annotations: map[string]string{annotationProject: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "" {
				w := cmd.ErrOrStderr()
				ui.NewTheme(w, noColor).Error(w, "Page name is required.")
				fmt.Fprintf(w, "Usage: %s <page_name>\n", cmd.CommandPath())
				return errPageNameRequired
			}
			if len(args) > 1 {
				return fmt.Errorf("expected a single page name, got %d arguments", len(args))
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return createPage(cmd.OutOrStdout(), s, args[0], strictName)
		},
	}

	cmd.Flags().BoolVar(&strictName, "strict-name", false, "Fail instead of using the directory name when pubspec.yaml has no usable name")
	return cmd
}

// ExecutePage runs the standalone create-page binary.
func ExecutePage(version, commit, date string) error {
	setBuildInfo(version, commit, date)
	handleInterrupt(os.Stderr)
	return run(newPageRoot())
}

func newPageRoot() *cobra.Command {
	cmd := newPageCommand(branding.PageCLIName())
	cmd.Version = buildVersion
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Flags().StringVarP(&projectDir, "dir", "C", "", "Flutter project directory (default: current directory)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func createPage(w io.Writer, s *session, pageName string, strict bool) error {
	res, err := project.Resolve(s.root, project.ResolveOptions{Strict: strict})
	switch {
	case errors.Is(err, project.ErrConfigNotFound):
		return fmt.Errorf("%w in %s; run this command from the root of a Flutter project", err, s.root)
	case err != nil:
		return fmt.Errorf("%s: %w", s.root, err)
	}
	if res.Warning != "" {
		s.theme.Warn(w, "%s", res.Warning)
	}

	data, err := scaffold.NewPageData(res.Name, pageName)
	if err != nil {
		return err
	}

	s.theme.Heading(w, "Creating page structure for %sPage in %s project...", data.ClassPrefix, data.ProjectName)

	result, err := scaffold.Generate(data, s.root)
	if err != nil {
		return fmt.Errorf("could not create page files: %w", err)
	}

	registerPresenter(w, s, data)

	fmt.Fprintln(w)
	s.theme.Success(w, "Page '%s' created successfully!", data.ClassPrefix)
	printPageTree(w, s.theme, result)
	return nil
}

// registerPresenter patches the DI setup file. Every failure is a warning:
// the page files are already written.
func registerPresenter(w io.Writer, s *session, data *scaffold.PageData) {
	registryPath := s.settings.RegistryPath
	if !filepath.IsAbs(registryPath) {
		registryPath = filepath.Join(s.root, registryPath)
	}

	patcher := &registrar.Patcher{Path: registryPath, SetupFunc: s.settings.SetupFunc}
	reg := registrar.PresenterRegistration(data.PresenterImport(), data.ClassPrefix)

	res, err := patcher.Apply(reg)
	if err != nil {
		s.theme.Warn(w, "%v", err)
		fmt.Fprintln(w, "Presenter registration in DI container skipped.")
		return
	}

	file := filepath.Base(res.Path)
	switch {
	case res.Registered:
		s.theme.Success(w, "Updated %s with %sPresenter registration.", file, data.ClassPrefix)
		fmt.Fprintf(w, "%s%s\n", s.theme.Blue("  Added: "), reg.Line)
	case res.ImportAdded:
		s.theme.Success(w, "Added %sPresenter import to %s.", data.ClassPrefix, file)
	default:
		fmt.Fprintf(w, "%sPresenter is already registered in %s.\n", data.ClassPrefix, file)
	}
}

// printPageTree draws the generated directories and files as a tree.
func printPageTree(w io.Writer, theme ui.Theme, result *scaffold.Result) {
	fmt.Fprintf(w, "  %s\n", theme.Blue("Structure:"))
	fmt.Fprintf(w, "    └── %s\n", theme.Blue(result.PageDir))

	for i, dir := range result.Dirs {
		lastDir := i == len(result.Dirs)-1
		branch, indent := "├── ", "│   "
		if lastDir {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(w, "        %s%s\n", branch, theme.Blue(path.Base(dir)))

		var files []string
		for _, f := range result.Files {
			if path.Dir(f) == dir {
				files = append(files, path.Base(f))
			}
		}
		for j, f := range files {
			leaf := "├── "
			if j == len(files)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(w, "        %s%s%s\n", indent, leaf, theme.Green(f))
		}
	}
}
