// Package core provides a small, stable facade over secretgate's internal
// engine for programs that want the gate without the CLI. It re-exports a
// narrow API surface so callers can depend on a stable import path without
// importing internal packages.
//
// Example:
//
//	out, err := core.Scan(ctx, core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalOutcome(os.Stdout, out)
package core
