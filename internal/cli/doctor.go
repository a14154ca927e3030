package cli

import (
	"fmt"

	"github.com/droidpowers/droidpowers/internal/installer"
	"github.com/spf13/cobra"
)

var (
	doctorDiff      bool
	doctorTemplates string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorDiff, "diff", false, "Show how customized files differ from the bundled copies")
	doctorCmd.Flags().StringVar(&doctorTemplates, "templates", "", "Compare against this template directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [target]",
	Short: "Check an installation against the bundled templates",
	Long: `Report, for each template asset, whether it is installed in the target
directory (default: the current directory), which bundled files are
missing, and which files have been changed locally.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) == 1 {
			target = args[0]
		}

		if _, err := installer.ValidateTarget(target); err != nil {
			return err
		}

		inst, err := newInstaller(doctorTemplates)
		if err != nil {
			return err
		}

		statuses, err := inst.Inspect(target)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Templates: %s\n\n", inst.TemplatesDir())

		problems := 0
		for _, st := range statuses {
			label := assetLabel(st.Asset)
			switch {
			case !st.Present:
				fmt.Fprintf(out, "  ✗ %s not installed\n", label)
				problems++
			case st.UpToDate():
				fmt.Fprintf(out, "  ✓ %s\n", label)
			default:
				fmt.Fprintf(out, "  ⚠️  %s\n", label)
				for _, m := range st.Missing {
					fmt.Fprintf(out, "      missing:  %s\n", m)
				}
				for _, m := range st.Modified {
					fmt.Fprintf(out, "      modified: %s\n", m)
				}
			}

			if doctorDiff && st.Present && st.Asset.Kind == installer.AssetFile && len(st.Modified) > 0 {
				diff, err := inst.Diff(target, st.Asset.Name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, diff)
			}
		}

		fmt.Fprintln(out)
		if problems > 0 {
			return fmt.Errorf("%d template asset(s) not installed; run 'install' to add them", problems)
		}
		fmt.Fprintln(out, "✓ Installation looks good.")
		return nil
	},
}
