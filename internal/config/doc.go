// Package config manages user-level settings stored at ~/.sitefleet/config.yaml.
// Settings cover the default template root, the instance marker, the external
// commands run after scaffolding or updating a site, and the backup directory
// name. Every key can be overridden with a SITEFLEET_* environment variable.
package config
