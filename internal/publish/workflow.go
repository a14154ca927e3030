package publish

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/droidpowers/droidpowers/internal/branding"
	"github.com/droidpowers/droidpowers/internal/manifest"
	"github.com/droidpowers/droidpowers/internal/platform"
)

// Options configures a release.
type Options struct {
	// Dir is the package directory (holds package.json).
	Dir string
	// DryRun runs every check but only reports bump, publish and tag.
	DryRun    bool
	SkipTests bool
	SkipBuild bool
	// Bump preselects the increment used when the version is already
	// published; empty means ask.
	Bump          Bump
	MainBranch    string
	TestScript    string
	BuildScript   string
	RequiredFiles []string
	RequiredDirs  []string
}

// Report summarizes a finished release.
type Report struct {
	Package string
	Version string
	DistTag string
	Tag     string
	// TagErr is set when tagging failed; the release itself still succeeded.
	TagErr error
	DryRun bool
}

// Workflow runs the release steps in order.
type Workflow struct {
	opts      Options
	runner    Runner
	publisher Publisher
	prompter  Prompter
	console   *Console
}

// NewWorkflow wires a release. The publisher is chosen here from
// opts.DryRun and never changes afterwards.
func NewWorkflow(opts Options, runner Runner, prompter Prompter, console *Console) *Workflow {
	if opts.MainBranch == "" {
		opts.MainBranch = branding.MainBranch()
	}
	return &Workflow{
		opts:      opts,
		runner:    runner,
		publisher: NewPublisher(opts.DryRun, runner, opts.Dir, console),
		prompter:  prompter,
		console:   console,
	}
}

// Run performs the full release: prerequisites, file validation, tests,
// build, version check, publish, tag and summary.
func (w *Workflow) Run(ctx context.Context) (*Report, error) {
	w.console.Title("🚀 %s NPM Publishing", branding.DisplayName())
	if w.opts.DryRun {
		w.console.Warn("🔍 DRY RUN MODE - No actual publishing will occur")
	}

	if err := w.checkPrerequisites(ctx); err != nil {
		return nil, err
	}
	pkg, err := w.validateFiles()
	if err != nil {
		return nil, err
	}
	if err := w.runTests(ctx); err != nil {
		return nil, err
	}
	if err := w.build(ctx); err != nil {
		return nil, err
	}
	if err := w.checkVersion(ctx, pkg); err != nil {
		return nil, err
	}

	report, err := w.publish(ctx, pkg)
	if err != nil {
		return nil, err
	}
	w.createTag(ctx, report)
	w.summary(report)
	return report, nil
}

func (w *Workflow) checkPrerequisites(ctx context.Context) error {
	w.console.Step("Checking prerequisites")

	user, err := w.runner.Output(ctx, w.opts.Dir, "npm", "whoami")
	if err != nil {
		w.console.Error("Not authenticated with npm. Run: npm login")
		return stepErr("prerequisites", fmt.Errorf("npm authentication: %w", err))
	}
	w.console.Success("Authenticated as: %s", user)

	branch, err := w.runner.Output(ctx, w.opts.Dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		w.console.Error("Could not determine current branch")
		return stepErr("prerequisites", err)
	}
	if branch != w.opts.MainBranch {
		w.console.Warn("Not on %s branch (currently on %s)", w.opts.MainBranch, branch)
		ok, err := w.prompter.Confirm("Continue anyway?", false)
		if err != nil {
			return stepErr("prerequisites", err)
		}
		if !ok {
			return stepErr("prerequisites", ErrAborted)
		}
	} else {
		w.console.Success("On correct branch: %s", branch)
	}

	return w.requireCleanTree(ctx, "prerequisites")
}

func (w *Workflow) requireCleanTree(ctx context.Context, step string) error {
	status, err := w.runner.Output(ctx, w.opts.Dir, "git", "status", "--porcelain")
	if err != nil {
		w.console.Error("Could not check git status")
		return stepErr(step, err)
	}
	if status != "" {
		w.console.Error("Working directory is not clean. Commit or stash changes first.")
		w.console.Plain("%s", status)
		return stepErr(step, fmt.Errorf("working directory is not clean"))
	}
	w.console.Success("Working directory is clean")
	return nil
}

func (w *Workflow) validateFiles() (*manifest.Package, error) {
	w.console.Step("Validating required files")

	for _, f := range w.opts.RequiredFiles {
		if !platform.FileExists(filepath.Join(w.opts.Dir, f)) {
			w.console.Error("Missing required file: %s", f)
			return nil, stepErr("validate", fmt.Errorf("missing required file %s", f))
		}
		w.console.Success("Found: %s", f)
	}
	for _, d := range w.opts.RequiredDirs {
		if !platform.DirectoryExists(filepath.Join(w.opts.Dir, d)) {
			w.console.Error("Missing required directory: %s", d)
			return nil, stepErr("validate", fmt.Errorf("missing required directory %s", d))
		}
		w.console.Success("Found directory: %s", d)
	}

	pkg, err := manifest.LoadValid(w.opts.Dir)
	if err != nil {
		w.console.Error("Invalid %s", manifest.FileName)
		return nil, stepErr("validate", err)
	}
	w.console.Success("Package: %s", pkg.Spec())
	if pre, _ := pkg.IsPrerelease(); pre {
		w.console.Warn("Prerelease version: will publish under the %q dist-tag", DistTagNext)
	}
	return pkg, nil
}

func (w *Workflow) runTests(ctx context.Context) error {
	if w.opts.SkipTests {
		w.console.Step("Skipping tests")
		w.console.Warn("Tests skipped by request")
		return nil
	}
	if strings.TrimSpace(w.opts.TestScript) == "" {
		return nil
	}

	w.console.Step("Running tests")
	if err := w.runScript(ctx, w.opts.TestScript); err != nil {
		w.console.Error("Tests failed")
		return stepErr("tests", err)
	}
	w.console.Success("All tests passed")
	return nil
}

func (w *Workflow) build(ctx context.Context) error {
	if strings.TrimSpace(w.opts.BuildScript) == "" {
		return nil
	}
	if w.opts.SkipBuild {
		w.console.Step("Skipping build")
		w.console.Warn("Build skipped by request")
		return nil
	}

	w.console.Step("Building project")
	if err := w.runScript(ctx, w.opts.BuildScript); err != nil {
		w.console.Error("Build failed")
		return stepErr("build", err)
	}
	w.console.Success("Build completed")
	return nil
}

func (w *Workflow) runScript(ctx context.Context, script string) error {
	words, err := splitScript(script)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	return w.runner.Run(ctx, w.opts.Dir, words[0], words[1:]...)
}

// checkVersion bumps pkg.Version when the current version is already on the
// registry. `npm view` prints nothing for an unknown version, so only an
// exact echo of the version counts as published.
func (w *Workflow) checkVersion(ctx context.Context, pkg *manifest.Package) error {
	w.console.Step("Checking version")

	out, err := w.runner.Output(ctx, w.opts.Dir, "npm", "view", pkg.Spec(), "version")
	if err != nil || strings.TrimSpace(out) != pkg.Version {
		w.console.Success("Version %s is new", pkg.Version)
		return nil
	}

	w.console.Warn("Version %s already exists on npm", pkg.Version)
	ok, err := w.prompter.Confirm("Bump version?", true)
	if err != nil {
		return stepErr("version", err)
	}
	if !ok {
		return stepErr("version", fmt.Errorf("version %s is already published", pkg.Version))
	}

	return w.bumpVersion(ctx, pkg)
}

func (w *Workflow) bumpVersion(ctx context.Context, pkg *manifest.Package) error {
	w.console.Step("Bumping version")

	bump := w.opts.Bump
	if bump == "" {
		choices := make([]string, len(Bumps))
		for i, b := range Bumps {
			choices[i] = string(b)
		}
		idx, err := w.prompter.Select("Choose version bump type:", choices)
		if err != nil {
			w.console.Error("Version bump cancelled")
			return stepErr("version", err)
		}
		bump = Bumps[idx]
	}

	next, err := w.publisher.BumpVersion(ctx, pkg, bump)
	if err != nil {
		w.console.Error("Failed to bump version")
		return stepErr("version", err)
	}
	pkg.Version = next
	w.console.Success("Version bumped to %s", next)
	return nil
}

func (w *Workflow) publish(ctx context.Context, pkg *manifest.Package) (*Report, error) {
	w.console.Step("Publishing to npm")

	distTag, err := DistTag(pkg.Version)
	if err != nil {
		return nil, stepErr("publish", err)
	}
	if err := w.publisher.Publish(ctx, pkg, distTag); err != nil {
		w.console.Error("Failed to publish to npm")
		return nil, stepErr("publish", err)
	}

	return &Report{
		Package: pkg.Name,
		Version: pkg.Version,
		DistTag: distTag,
		Tag:     TagName(pkg.Version),
		DryRun:  w.opts.DryRun,
	}, nil
}

// createTag never fails the release; the tag can be created by hand.
func (w *Workflow) createTag(ctx context.Context, report *Report) {
	w.console.Step("Creating git tag")
	if err := w.publisher.Tag(ctx, report.Tag); err != nil {
		report.TagErr = err
		w.console.Warn("Failed to create git tag (you may need to create it manually)")
	}
}

func (w *Workflow) summary(r *Report) {
	if r.DryRun {
		w.console.Title("\n🔍 Dry run complete")
	} else {
		w.console.Title("\n🎉 Publish successful!")
	}
	w.console.Step("Post-publish information:")
	w.console.Plain("Package: %s@%s", r.Package, r.Version)
	w.console.Plain("Install: npm install %s", r.Package)
	w.console.Plain("Global: npm install -g %s", r.Package)
	w.console.Plain("npm page: https://www.npmjs.com/package/%s", r.Package)
	if r.DistTag == DistTagNext {
		w.console.Warn("To install this prerelease: npm install %s@next", r.Package)
	}
}
