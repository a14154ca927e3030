package publish

import (
	"context"
	"fmt"

	"github.com/droidpowers/droidpowers/internal/manifest"
)

// Quick is the fast path for when everything is known to be ready: a clean
// tree, tests, publish and tag. Unlike Run, every failure is fatal,
// including tagging, and nothing is asked interactively.
func (w *Workflow) Quick(ctx context.Context) (*Report, error) {
	w.console.Title("🚀 Quick Publish to NPM")
	if w.opts.DryRun {
		w.console.Warn("🔍 DRY RUN MODE - No actual publishing will occur")
	}

	if err := w.requireCleanTree(ctx, "quick"); err != nil {
		return nil, err
	}

	pkg, err := manifest.LoadValid(w.opts.Dir)
	if err != nil {
		return nil, stepErr("quick", err)
	}

	if !w.opts.SkipTests && w.opts.TestScript != "" {
		w.console.Plain("Running tests...")
		if err := w.runScript(ctx, w.opts.TestScript); err != nil {
			w.console.Error("Failed: %s", w.opts.TestScript)
			return nil, stepErr("tests", err)
		}
	}

	w.console.Plain("Publishing to npm...")
	report, err := w.publish(ctx, pkg)
	if err != nil {
		return nil, err
	}

	w.console.Plain("Creating git tag: %s", report.Tag)
	if err := w.publisher.Tag(ctx, report.Tag); err != nil {
		w.console.Error("Failed: git tag %s", report.Tag)
		return nil, stepErr("tag", fmt.Errorf("release %s published but not tagged: %w", pkg.Spec(), err))
	}

	w.console.Success("Published %s successfully!", pkg.Spec())
	return report, nil
}
