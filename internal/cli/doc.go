// Package cli defines the Cobra command tree for the sitefleet CLI. Each file
// registers one top-level command with the root command. Commands parse flags,
// wire the internal packages together, and format output; the scaffold and
// update logic lives in internal/scaffold and internal/fleet.
package cli
