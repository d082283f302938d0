package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flutterkit-labs/flutterkit/internal/project"
	"github.com/flutterkit-labs/flutterkit/internal/toolchain"
	"github.com/spf13/cobra"
)

var (
	checkTools    bool
	checkSDK      bool
	checkPubspec  bool
	checkRegistry bool
)

func init() {
	doctorCmd.Flags().BoolVar(&checkTools, "check-tools", false, "Verify flutter, dart and pod are on PATH")
	doctorCmd.Flags().BoolVar(&checkSDK, "check-sdk", false, "Compare installed SDK versions with pubspec constraints")
	doctorCmd.Flags().BoolVar(&checkPubspec, "check-pubspec", false, "Validate pubspec.yaml")
	doctorCmd.Flags().BoolVar(&checkRegistry, "check-registry", false, "Verify the presenter setup file exists")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check toolchain and project health",
	Long: `Run diagnostic checks on the Flutter toolchain and the current project.
Missing tools are reported but never fail the command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		all := !checkTools && !checkSDK && !checkPubspec && !checkRegistry
		if all || checkTools {
			runToolCheck(w, s)
		}
		if all || checkSDK {
			runSDKCheck(cmd.Context(), w, s)
		}
		if all || checkPubspec {
			runPubspecCheck(w, s)
		}
		if all || checkRegistry {
			runRegistryCheck(w, s)
		}
		return nil
	},
}

func runToolCheck(w io.Writer, s *session) {
	fmt.Fprintln(w, "Toolchain check:")
	for _, st := range toolchain.LookupTools(s.tools()) {
		if !st.Found {
			fmt.Fprintf(w, "  [MISS] %s not found (%s)\n", st.Name, st.Bin)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", st.Name, st.Path)
	}
}

func runSDKCheck(ctx context.Context, w io.Writer, s *session) {
	fmt.Fprintln(w, "SDK check:")

	if v, err := toolchain.InstalledVersion(ctx, s.settings.FlutterBin, toolchain.ParseFlutterVersion); err != nil {
		fmt.Fprintf(w, "  [MISS] Flutter version unavailable: %v\n", err)
	} else {
		fmt.Fprintf(w, "  [ OK ] Flutter %s\n", v)
	}

	dart, err := toolchain.InstalledVersion(ctx, s.settings.DartBin, toolchain.ParseDartVersion)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] Dart version unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] Dart %s\n", dart)

	spec, err := project.Load(filepath.Join(s.root, project.PubspecFile))
	if err != nil {
		fmt.Fprintf(w, "  [WARN] Cannot read SDK constraint: %v\n", err)
		return
	}
	constraint := spec.SDKConstraint()
	if constraint == "" {
		fmt.Fprintln(w, "  [WARN] pubspec.yaml declares no environment.sdk constraint")
		return
	}
	ok, err := toolchain.SatisfiesSDK(constraint, dart)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	case ok:
		fmt.Fprintf(w, "  [ OK ] Dart %s satisfies %q\n", dart, constraint)
	default:
		fmt.Fprintf(w, "  [WARN] Dart %s does not satisfy %q\n", dart, constraint)
	}
}

func runPubspecCheck(w io.Writer, s *session) {
	path := filepath.Join(s.root, project.PubspecFile)
	fmt.Fprintf(w, "Pubspec check: %s\n", path)

	result, err := project.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	if !result.Valid {
		fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "    - %s\n", issue)
		}
		return
	}

	spec, err := project.Load(path)
	if err != nil {
		fmt.Fprintf(w, "  [ OK ] Valid pubspec\n")
		return
	}
	fmt.Fprintf(w, "  [ OK ] Valid pubspec: %s\n", spec.Name)
	if spec.Version == "" {
		return
	}
	if v, err := toolchain.AppVersion(spec.Version); err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	} else {
		fmt.Fprintf(w, "  [ OK ] App version %s\n", v)
	}
}

func runRegistryCheck(w io.Writer, s *session) {
	fmt.Fprintln(w, "Registry check:")
	path := s.settings.RegistryPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found; presenter registration will be skipped\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}
