package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/flutterkit-labs/flutterkit/internal/branding"
	"github.com/flutterkit-labs/flutterkit/internal/config"
	"github.com/flutterkit-labs/flutterkit/internal/toolchain"
	"github.com/flutterkit-labs/flutterkit/internal/ui"
	"github.com/spf13/cobra"
)

// InterruptExitCode is the status used when the user interrupts a run.
const InterruptExitCode = 130

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	projectDir string
	failFast   bool
	noColor    bool
)

// errUsage is returned after usage has been printed for a missing or
// unknown command.
var errUsage = errors.New("usage")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [command]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` wraps the Flutter, Dart and CocoaPods toolchains behind short
commands that show a spinner per step, and scaffolds presentation-layer pages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		printUsage(cmd.ErrOrStderr())
		return errUsage
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Only the build and page commands touch the project tree.
		if !cmd.HasParent() || cmd.Annotations[annotationProject] != "true" {
			return nil
		}
		return toolchain.EnsureOutputDirs(projectDir)
	},
}

const annotationProject = "project"

func init() {
	cobra.EnableCaseInsensitive = true
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Flutter project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&failFast, "fail-fast", false, "Stop a command at its first failed step")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(newPageCommand("page"))
}

// Execute runs the flutterkit command tree with build info injected via
// ldflags.
func Execute(version, commit, date string) error {
	setBuildInfo(version, commit, date)
	handleInterrupt(os.Stderr)
	return run(rootCmd)
}

func setBuildInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// run executes root and prints the error, if any, the way the commands
// print everything else.
func run(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}

	w := root.ErrOrStderr()
	theme := ui.NewTheme(w, noColor)
	switch {
	case errors.Is(err, errUsage), errors.Is(err, errPageNameRequired):
		// Already reported.
	case errors.Is(err, toolchain.ErrStepsFailed):
		// The dispatcher printed the failed steps.
	case strings.HasPrefix(err.Error(), "unknown command"):
		theme.Error(w, "%v", err)
		printUsage(w)
	default:
		theme.Error(w, "%v", err)
	}
	return err
}

// handleInterrupt exits with InterruptExitCode on SIGINT or SIGTERM. Running
// children share the terminal's process group and receive the signal too.
func handleInterrupt(w io.Writer) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Fprintln(w, "\nProcess interrupted. Exiting...")
		os.Exit(InterruptExitCode)
	}()
}

func printUsage(w io.Writer) {
	theme := ui.NewTheme(w, noColor)
	fmt.Fprintln(w, theme.Yellow(fmt.Sprintf("Usage: %s [command]", branding.CLIName())))
	fmt.Fprintln(w, "\nAvailable commands:")
	for _, c := range toolchain.Commands {
		fmt.Fprintf(w, "  %-13s%s\n", c.Name, c.Short)
	}
	fmt.Fprintf(w, "  %-13s%s\n", "page", fmt.Sprintf("Create page structure (usage: %s page <page_name>)", branding.CLIName()))
	fmt.Fprintf(w, "  %-13s%s\n", "doctor", "Check toolchain and project health")
	fmt.Fprintf(w, "  %-13s%s\n", "config", "Show or change settings (get, set, list)")
	fmt.Fprintf(w, "  %-13s%s\n", "version", "Show the release and build platform")
}

// session is the resolved per-invocation state shared by the commands.
type session struct {
	root     string
	settings config.Settings
	theme    ui.Theme
}

func newSession(cmd *cobra.Command) (*session, error) {
	root := projectDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		root = wd
	}

	config.Load(root)
	settings := config.Current()
	if failFast {
		settings.FailFast = true
	}
	if noColor {
		settings.NoColor = true
	}

	return &session{
		root:     root,
		settings: settings,
		theme:    ui.NewTheme(cmd.OutOrStdout(), settings.NoColor),
	}, nil
}

func (s *session) tools() toolchain.Tools {
	return toolchain.Tools{
		Flutter: s.settings.FlutterBin,
		Dart:    s.settings.DartBin,
		Pod:     s.settings.PodBin,
	}
}
