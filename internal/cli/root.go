package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MakeNowJust/heredoc"
	"github.com/droidpowers/droidpowers/internal/branding"
	"github.com/droidpowers/droidpowers/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: heredoc.Docf(`
		%s installs the droid workflow templates (.factory/, AGENTS.md.template,
		DSM_README.md) into a project and publishes new releases of the
		package to npm.

		Run '%s install' inside a project to get started.`,
		branding.DisplayName(), branding.CLIName()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.SetVersionTemplate(branding.CLIName() + " v{{.Version}}\n")
}

// Execute runs the root command with build info injected via ldflags. A
// failing command has its error printed to stderr before it is returned.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "❌ %v\n", err)
		return err
	}
	return nil
}
