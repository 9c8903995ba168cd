// Package config loads secretgate configuration from a repo-local and a
// global YAML file. It is internal; CLI code maps flags and files into
// engine configuration.
package config
