package core

import (
	"context"

	"github.com/w154594742/secretgate/internal/engine"
	"github.com/w154594742/secretgate/internal/rules"
	"github.com/w154594742/secretgate/internal/source"
	"github.com/w154594742/secretgate/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Finding  = types.Finding
	Outcome  = types.Outcome
	RuleSpec = rules.Spec
)

// Config selects what to scan. The zero value (plus Root) scans the tracked
// files of Root with the built-in rules and path filter.
type Config struct {
	Root           string
	Threads        int
	Staged         bool       // only files staged for commit
	ExtraRules     []RuleSpec // appended after the built-ins
	DisableRules   []string   // built-in rule names to drop
	SkipExtensions []string
	SkipPaths      []string // doublestar globs
}

// Scan is the stable entrypoint for other programs. Configuration errors
// are returned before any file is read; findings are not an error.
func Scan(ctx context.Context, cfg Config) (Outcome, error) {
	rs, err := rules.Compile(cfg.ExtraRules, cfg.DisableRules)
	if err != nil {
		return Outcome{}, err
	}
	filter, err := engine.NewPathFilter(cfg.SkipExtensions, cfg.SkipPaths)
	if err != nil {
		return Outcome{}, err
	}
	ec := engine.Config{Root: cfg.Root, Rules: rs, Filter: filter, Threads: cfg.Threads}
	if cfg.Staged {
		ec.Sources = source.Chain{source.Staged{}}
	}
	return engine.Run(ctx, ec)
}

// RuleNames returns the built-in rule names in evaluation order.
func RuleNames() []string { return rules.Default().Names() }
