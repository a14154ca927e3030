// Package cli defines the Cobra command tree for the droidpowers CLI. Each
// file in this package registers one top-level command (install, doctor,
// publish, config, version) with the root command. Commands delegate to the
// installer and publish packages and only handle flags, output and prompts.
package cli
