package publish

import (
	"context"
	"fmt"

	"github.com/droidpowers/droidpowers/internal/manifest"
)

// Publisher performs the release steps that change state outside the
// working tree checks: bumping the version, publishing, and tagging.
type Publisher interface {
	// BumpVersion increments the package version and returns the new one.
	BumpVersion(ctx context.Context, pkg *manifest.Package, bump Bump) (string, error)
	// Publish uploads the package under distTag.
	Publish(ctx context.Context, pkg *manifest.Package, distTag string) error
	// Tag creates the git tag and pushes it to origin.
	Tag(ctx context.Context, tag string) error
}

// NewPublisher returns the dry-run publisher when dryRun is set and the npm
// publisher otherwise.
func NewPublisher(dryRun bool, runner Runner, dir string, console *Console) Publisher {
	if dryRun {
		return &DryRunPublisher{console: console}
	}
	return &NPMPublisher{runner: runner, dir: dir, console: console}
}

// NPMPublisher releases with the npm and git command-line tools.
type NPMPublisher struct {
	runner  Runner
	dir     string
	console *Console
}

// BumpVersion runs `npm version <bump>`, which also commits and tags in git
// when dir is a repository, then re-reads the manifest.
func (p *NPMPublisher) BumpVersion(ctx context.Context, pkg *manifest.Package, bump Bump) (string, error) {
	if err := p.runner.Run(ctx, p.dir, "npm", "version", string(bump)); err != nil {
		return "", fmt.Errorf("bumping version: %w", err)
	}
	updated, err := manifest.Load(p.dir)
	if err != nil {
		return "", fmt.Errorf("re-reading manifest after bump: %w", err)
	}
	return updated.Version, nil
}

// Publish runs `npm publish`, adding --tag for channels other than latest.
func (p *NPMPublisher) Publish(ctx context.Context, pkg *manifest.Package, distTag string) error {
	args := []string{"publish"}
	if distTag != "" && distTag != DistTagLatest {
		args = append(args, "--tag", distTag)
	}
	p.console.Info("Running: %s", commandLine("npm", args))

	if err := p.runner.Run(ctx, p.dir, "npm", args...); err != nil {
		return fmt.Errorf("publishing %s: %w", pkg.Spec(), err)
	}
	p.console.Success("Published %s to npm", pkg.Spec())
	return nil
}

// Tag creates tag locally and pushes it to origin. A tag that already
// exists, as left by `npm version`, is pushed as is.
func (p *NPMPublisher) Tag(ctx context.Context, tag string) error {
	existing, err := p.runner.Output(ctx, p.dir, "git", "tag", "--list", tag)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}
	if existing != tag {
		if err := p.runner.Run(ctx, p.dir, "git", "tag", tag); err != nil {
			return fmt.Errorf("creating tag %s: %w", tag, err)
		}
	}
	if err := p.runner.Run(ctx, p.dir, "git", "push", "origin", tag); err != nil {
		return fmt.Errorf("pushing tag %s: %w", tag, err)
	}
	p.console.Success("Created and pushed tag: %s", tag)
	return nil
}

// DryRunPublisher reports what a release would do without running anything.
type DryRunPublisher struct {
	console *Console
}

// BumpVersion computes the next version without touching package.json.
func (p *DryRunPublisher) BumpVersion(_ context.Context, pkg *manifest.Package, bump Bump) (string, error) {
	next, err := NextVersion(pkg.Version, bump)
	if err != nil {
		return "", err
	}
	p.console.Success("[DRY RUN] Would run npm version %s (%s → %s)", bump, pkg.Version, next)
	return next, nil
}

// Publish reports the publish that would happen.
func (p *DryRunPublisher) Publish(_ context.Context, pkg *manifest.Package, distTag string) error {
	p.console.Success("[DRY RUN] Would publish %s (dist-tag %s)", pkg.Spec(), distTag)
	return nil
}

// Tag reports the tag that would be created.
func (p *DryRunPublisher) Tag(_ context.Context, tag string) error {
	p.console.Success("[DRY RUN] Would create tag %s", tag)
	return nil
}
