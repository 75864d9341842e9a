// Package manifest reads the package.json of a site instance or template and
// compares the versions it declares.
package manifest
