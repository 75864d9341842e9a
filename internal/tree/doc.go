// Package tree is a small tagged-value document model used to compose site
// configurations. A Value is an object, an array, a scalar, or null. Objects
// merge recursively; arrays and scalars replace wholesale. Paths are explicit
// segment lists, so dotted answer keys are parsed once instead of being split
// during every merge.
package tree
