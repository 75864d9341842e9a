// Package templateset decides which template paths travel to an instance:
// everything not excluded when a site is first scaffolded, and only the
// fixed sync list when an existing site is updated. It also provides the
// filtered tree copy shared by scaffolding and backups.
package templateset
