// Package manifest reads and validates package.json, the npm manifest the
// release workflow publishes from. Validation runs against an embedded JSON
// Schema and reports every violation with its location.
package manifest
