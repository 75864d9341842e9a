// Package fleet propagates template changes to every managed site under a
// base directory.
//
// Each site goes through the same sequence: back up the instance, push every
// file on the sync list, then reinstall and rebuild. Sites are processed one
// at a time and a failure in one site is recorded in its report without
// stopping the rest. In dry-run mode nothing is written and no commands run.
//
// Only paths on the sync list are ever written, and nothing is deleted, so
// instance-only files and the site configuration are never touched.
package fleet
