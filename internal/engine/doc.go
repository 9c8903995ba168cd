// Package engine contains the core scanning logic: it resolves candidate
// files, drops the ones PathFilter excludes, runs the rules over each line
// of the rest and returns findings that carry only location and rule name.
// This package is internal; external consumers should use pkg/core.
package engine
