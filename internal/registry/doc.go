// Package registry discovers the managed site instances that live directly
// under a base directory. A directory is a managed site when it holds a
// package.json whose name contains the instance marker.
package registry
