// Package siteconfig defines the configuration document written into every
// site instance: the typed SiteConfig schema, its documented defaults, JSON
// Schema validation of merged documents, and rendering of the TypeScript
// configuration artifact.
package siteconfig
