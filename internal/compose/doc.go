// Package compose builds a complete site configuration from three layers:
// the schema defaults, a named template profile, and the operator's answers.
//
// Answers are addressed by dotted path and checked against the question
// table before anything is merged. The merged document is normalized and
// validated against the site configuration schema, then decoded into
// siteconfig.SiteConfig.
package compose
