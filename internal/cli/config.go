package cli

import (
	"fmt"

	"github.com/droidpowers/droidpowers/internal/branding"
	"github.com/droidpowers/droidpowers/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: fmt.Sprintf(`Read and write %s configuration stored at ~/%s/config.yaml.

Known keys:
  %-24s template directory used by install and doctor
  %-24s branch releases must be cut from
  %-24s test command run before publishing
  %-24s build command run before publishing
  %-24s lock a target during install (true/false)`,
		branding.DisplayName(), branding.HomeDir(),
		config.KeyTemplatesDir, config.KeyMainBranch, config.KeyTestScript,
		config.KeyBuildScript, config.KeyInstallLocking),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
