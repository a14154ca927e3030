// Package publish automates npm releases of the package: preflight checks
// against git and the registry, tests, an optional build, version bumping,
// publishing under the right dist-tag, and tagging the release in git.
//
// Side effects go through two capabilities chosen once at startup: a Runner
// that executes commands, and a Publisher that either performs the mutating
// release steps or only reports them (dry run).
package publish
