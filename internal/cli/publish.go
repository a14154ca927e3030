package cli

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/droidpowers/droidpowers/internal/config"
	"github.com/droidpowers/droidpowers/internal/publish"
	"github.com/spf13/cobra"
)

var (
	publishDryRun    bool
	publishSkipTests bool
	publishSkipBuild bool
	publishQuick     bool
	publishYes       bool
	publishBump      string
	publishDir       string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Release the package to npm",
	Long: heredoc.Doc(`
		Run the release checklist and publish the package in --dir to npm:

		  1. npm login, main branch and a clean working tree
		  2. required files and a valid package.json
		  3. tests and (when configured) the build
		  4. bump the version if it is already on npm
		  5. npm publish (prereleases go to the "next" dist-tag)
		  6. tag v<version> and push the tag

		--quick skips the checklist and only checks for a clean tree, runs the
		tests, publishes and tags.`),
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "Run every check but do not bump, publish or tag")
	publishCmd.Flags().BoolVar(&publishSkipTests, "skip-tests", false, "Do not run the test script")
	publishCmd.Flags().BoolVar(&publishSkipBuild, "skip-build", false, "Do not run the build script")
	publishCmd.Flags().BoolVar(&publishQuick, "quick", false, "Clean tree, tests, publish and tag only")
	publishCmd.Flags().BoolVarP(&publishYes, "yes", "y", false, "Answer yes to every confirmation")
	publishCmd.Flags().StringVar(&publishBump, "bump", "", "Version bump to use if the version is taken (patch, minor, major, prerelease)")
	publishCmd.Flags().StringVar(&publishDir, "dir", ".", "Package directory")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	var bump publish.Bump
	if publishBump != "" {
		b, err := publish.ParseBump(publishBump)
		if err != nil {
			return err
		}
		bump = b
	}

	opts := publish.Options{
		Dir:           publishDir,
		DryRun:        publishDryRun,
		SkipTests:     publishSkipTests,
		SkipBuild:     publishSkipBuild,
		Bump:          bump,
		MainBranch:    config.Get(config.KeyMainBranch),
		TestScript:    config.Get(config.KeyTestScript),
		BuildScript:   config.Get(config.KeyBuildScript),
		RequiredFiles: config.GetStrings(config.KeyRequiredFiles),
		RequiredDirs:  config.GetStrings(config.KeyRequiredDirs),
	}

	var prompter publish.Prompter = publish.NewLinePrompter(os.Stdin, cmd.OutOrStdout())
	if publishYes {
		prompter = publish.AssumeYes{}
	}

	runner := publish.NewExecRunner(logger)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	wf := publish.NewWorkflow(opts, runner, prompter, publish.NewConsole(cmd.OutOrStdout()))

	var err error
	if publishQuick {
		_, err = wf.Quick(cmd.Context())
	} else {
		_, err = wf.Run(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}
