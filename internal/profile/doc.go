// Package profile holds the compiled-in template profiles.
//
// A profile is a named partial site configuration (business identity,
// contact details, services, SEO, calls to action) that is layered over the
// schema defaults when a new site is composed. Profiles are embedded YAML
// files loaded once into a read-only Registry.
package profile
