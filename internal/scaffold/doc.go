// Package scaffold creates a new site instance from the template: it copies
// the template tree, composes and writes the site configuration, generates
// the instance README, and runs the post-create commands. A failure in any
// required step removes the partially created directory.
package scaffold
