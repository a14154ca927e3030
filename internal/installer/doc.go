// Package installer copies the bundled droid templates into a project: the
// .factory/ tree, replaced only when forced, and a couple of top-level files
// that are never overwritten once present. It also inspects a project to
// report which assets are installed and which were customized.
//
// Failures come back as typed errors so the CLI can decide how to present
// them; nothing in this package terminates the process.
package installer
