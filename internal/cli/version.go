package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/flutterkit-labs/flutterkit/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the release number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build details as JSON")
	rootCmd.AddCommand(versionCmd)
}

type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  buildVersion,
		Commit:   buildCommit,
		Built:    buildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (b buildInfo) print(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", branding.CLIName(), b.Version)
	fmt.Fprintf(w, "  commit:   %s\n", b.Commit)
	fmt.Fprintf(w, "  built:    %s\n", b.Built)
	fmt.Fprintf(w, "  go:       %s\n", b.Go)
	fmt.Fprintf(w, "  platform: %s\n", b.Platform)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the flutterkit release and the platform it was built for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		info := currentBuild()
		switch {
		case versionShort:
			fmt.Fprintln(w, info.Version)
		case versionJSON:
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding build info: %w", err)
			}
			fmt.Fprintln(w, string(out))
		default:
			info.print(w)
		}
		return nil
	},
}
