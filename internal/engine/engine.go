package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/w154594742/secretgate/internal/report"
	"github.com/w154594742/secretgate/internal/rules"
	"github.com/w154594742/secretgate/internal/source"
	"github.com/w154594742/secretgate/internal/types"
)

// Config controls one scan run.
type Config struct {
	Root    string
	Rules   rules.RuleSet
	Filter  PathFilter
	Sources source.Chain
	// Threads > 1 scans files concurrently; output order is unchanged.
	Threads int
}

// Run resolves candidate files, filters them, scans what remains and
// collects the findings in discovery order. The only errors are an unusable
// root and cancellation; per-file problems are skips.
func Run(ctx context.Context, cfg Config) (types.Outcome, error) {
	var findings []types.Finding
	var scanned, skipped int

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return types.Outcome{}, fmt.Errorf("resolve root %q: %w", cfg.Root, err)
	}
	// WalkDir does not descend into a symlinked root.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if info, err := os.Stat(root); err != nil {
		return types.Outcome{}, fmt.Errorf("root %q: %w", cfg.Root, err)
	} else if !info.IsDir() {
		return types.Outcome{}, fmt.Errorf("root %q is not a directory", cfg.Root)
	}

	chain := cfg.Sources
	if chain == nil {
		chain = source.Default()
	}
	sel := chain.Resolve(ctx, root)
	if err := ctx.Err(); err != nil {
		return types.Outcome{}, err
	}

	results, err := scanAll(ctx, NewLineScanner(cfg.Rules), cfg.Filter, sel.Files, cfg.Threads)
	if err != nil {
		return types.Outcome{}, err
	}
	for _, r := range results {
		if r.Skipped {
			skipped++
			log.WithField("reason", r.Reason).Debugf("skipped %s", r.Path)
			continue
		}
		scanned++
		findings = append(findings, r.Findings...)
	}

	out := report.Gate(findings)
	out.Source = sel.Source
	out.FilesScanned = scanned
	out.FilesSkipped = skipped
	return out, nil
}

// scanAll returns one FileResult per candidate, index-aligned with files.
func scanAll(ctx context.Context, ls LineScanner, filter PathFilter, files []source.Candidate, threads int) ([]types.FileResult, error) {
	results := make([]types.FileResult, len(files))
	scanOne := func(i int) {
		c := files[i]
		if filter.ShouldSkip(c.Rel) {
			results[i] = types.FileResult{Path: c.Rel, Skipped: true, Reason: types.ReasonFiltered}
			return
		}
		results[i] = ls.Scan(c)
	}

	if threads <= 1 {
		for i := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scanOne(i)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scanOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
