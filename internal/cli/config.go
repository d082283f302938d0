package cli

import (
	"fmt"
	"strings"

	"github.com/flutterkit-labs/flutterkit/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change toolchain and generator settings",
	Long: `Settings live in ~/.flutterkit/config.yaml. A project-local .flutterkit.env
and FLUTTERKIT_* environment variables override them for a single run.

Keys: ` + strings.Join(config.Keys(), ", "),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in the user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]
		if !config.Known(key) {
			return unknownKeyError(key)
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		key := strings.ToLower(args[0])
		value, ok := s.settings.Value(key)
		if !ok {
			return unknownKeyError(key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every effective setting for this project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, key := range config.Keys() {
			value, _ := s.settings.Value(key)
			fmt.Fprintf(w, "%-17s %s\n", key, value)
		}
		return nil
	},
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(config.Keys(), ", "))
}
