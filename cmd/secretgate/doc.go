// Package secretgate provides the command-line interface for the secret scan
// gate. The root command scans a tree and maps the outcome to an exit code;
// subcommands list the active rules and print the version.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/w154594742/secretgate/cmd/secretgate"
//	func main() { secretgate.Execute() }
package secretgate
