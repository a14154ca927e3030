// Package copier mirrors bundled template trees into a project. Files are
// read whole and written whole; directories are copied depth-first in
// listing order and the first failure stops the copy, leaving whatever was
// already written in place.
//
// Copies are always writable by the owner: files get mode 0644 plus any
// execute bits of the source, directories 0755.
package copier
