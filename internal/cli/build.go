package cli

import (
	"github.com/flutterkit-labs/flutterkit/internal/platform"
	"github.com/flutterkit-labs/flutterkit/internal/progress"
	"github.com/flutterkit-labs/flutterkit/internal/toolchain"
	"github.com/spf13/cobra"
)

func init() {
	for _, c := range toolchain.Commands {
		rootCmd.AddCommand(newToolchainCommand(c))
	}
}

func newToolchainCommand(c toolchain.Command) *cobra.Command {
	name := c.Name
	return &cobra.Command{
		Use:         name,
		Short:       c.Short,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationProject: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			d := &toolchain.Dispatcher{
				Tools:    s.tools(),
				Runner:   progress.New(out, s.theme, s.settings.SpinnerInterval),
				Out:      out,
				Theme:    s.theme,
				Root:     s.root,
				FailFast: s.settings.FailFast,
				OpenDir:  platform.OpenDir,
			}
			_, err = d.Run(cmd.Context(), name)
			return err
		},
	}
}
