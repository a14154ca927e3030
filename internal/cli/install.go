package cli

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/droidpowers/droidpowers/internal/branding"
	"github.com/droidpowers/droidpowers/internal/config"
	"github.com/droidpowers/droidpowers/internal/installer"
	"github.com/spf13/cobra"
)

var (
	installForce     bool
	installTemplates string
)

var installCmd = &cobra.Command{
	Use:   "install [target]",
	Short: "Install the templates into a project",
	Long: heredoc.Doc(`
		Copy .factory/, AGENTS.md.template and DSM_README.md into the target
		directory (default: the current directory).

		An existing .factory/ is only replaced with --force. AGENTS.md.template
		and DSM_README.md are never overwritten, so local edits survive a
		reinstall.`),
	Example: heredoc.Doc(`
		droidpowers install
		droidpowers install ../my-app --force`),
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Replace an existing .factory/ directory")
	installCmd.Flags().StringVar(&installTemplates, "templates", "", "Install from this template directory instead of the bundled one")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	if _, err := installer.ValidateTarget(target); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	inst, err := newInstaller(installTemplates, installer.WithWarnings(func(msg string) {
		fmt.Fprintf(stderr, "⚠️  %s\n", msg)
	}))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📦 Installing %s...\n", branding.DisplayName())

	result, err := inst.Install(cmd.Context(), target, installForce)
	if result != nil {
		printAssetResults(out, result.Assets)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✅ %s installed successfully!\n", branding.DisplayName())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "1. Copy AGENTS.md.template to AGENTS.md and customize")
	fmt.Fprintln(out, "2. Start with /droid using-droids for any task")
	return nil
}

func printAssetResults(w io.Writer, results []installer.AssetResult) {
	for _, r := range results {
		switch r.State {
		case installer.StateInstalled:
			fmt.Fprintf(w, "  ✓ %s added\n", assetLabel(r.Asset))
		case installer.StateSkipped:
			fmt.Fprintf(w, "  - %s already present (kept)\n", assetLabel(r.Asset))
		case installer.StateAbsent:
			fmt.Fprintf(w, "  - %s not bundled\n", assetLabel(r.Asset))
		}
	}
}

func assetLabel(a installer.Asset) string {
	if a.Kind == installer.AssetDir {
		return a.Name + "/"
	}
	return a.Name
}

// newInstaller resolves the template root and applies the user's settings.
func newInstaller(override string, extra ...installer.Option) (*installer.Installer, error) {
	templatesDir, err := installer.LocateTemplates(override)
	if err != nil {
		return nil, err
	}
	logger.Debug("using templates", "dir", templatesDir)

	opts := []installer.Option{installer.WithLogger(logger)}
	if config.GetBool(config.KeyInstallLocking) {
		opts = append(opts, installer.WithLockDir(config.LockDir()))
	}
	return installer.New(templatesDir, append(opts, extra...)...), nil
}
