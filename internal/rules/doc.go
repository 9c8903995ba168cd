// Package rules defines the detection rules: a named positive pattern plus
// allowlist patterns that suppress known placeholders on the same line.
// Rules are compiled once at startup and never mutated.
package rules
