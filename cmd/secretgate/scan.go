package secretgate

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/w154594742/secretgate/internal/config"
	"github.com/w154594742/secretgate/internal/engine"
	"github.com/w154594742/secretgate/internal/git"
	"github.com/w154594742/secretgate/internal/report"
	"github.com/w154594742/secretgate/internal/rules"
	"github.com/w154594742/secretgate/internal/source"
)

// settings is the resolved configuration for one invocation.
type settings struct {
	root    string
	format  string
	threads int
	color   bool
	rules   rules.RuleSet
	filter  engine.PathFilter
}

// loadConfig layers CLI > local file (or --config) > global file.
func loadConfig(root, explicit string) (config.FileConfig, error) {
	gcfg, err := config.LoadGlobal()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return config.FileConfig{}, err
	}
	var lcfg config.FileConfig
	if explicit != "" {
		lcfg, err = config.LoadFile(explicit)
	} else {
		lcfg, err = config.LoadLocal(root)
	}
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return config.FileConfig{}, err
	}
	return config.Merge(gcfg, lcfg), nil
}

func resolve(opts *options, stdout, stderr io.Writer) (settings, error) {
	root, err := filepath.Abs(opts.repoRoot)
	if err != nil {
		return settings{}, fmt.Errorf("repo root: %w", err)
	}
	fc, err := loadConfig(root, opts.config)
	if err != nil {
		return settings{}, err
	}
	s := settings{
		root:    root,
		format:  pickString(opts.format, fc.Format, "text"),
		threads: pickInt(opts.threads, fc.Threads, 1),
	}
	switch s.format {
	case "text", "json", "sarif":
	default:
		return settings{}, fmt.Errorf("unknown format %q (want text, json or sarif)", s.format)
	}
	if s.threads < 1 {
		return settings{}, fmt.Errorf("threads must be >= 1, got %d", s.threads)
	}
	out := stdout
	if s.format == "text" {
		// the failure report goes to stderr
		out = stderr
	}
	s.color = !pickBool(opts.noColor, fc.NoColor) && isTerminal(out)

	if s.rules, err = rules.Compile(fc.Rules, fc.DisableRules); err != nil {
		return settings{}, err
	}
	if s.filter, err = engine.NewPathFilter(fc.SkipExtensions, fc.SkipPaths); err != nil {
		return settings{}, err
	}
	return s, nil
}

func runScan(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	setupLogging(stderr, opts.verbose)
	s, err := resolve(opts, stdout, stderr)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:    s.root,
		Rules:   s.rules,
		Filter:  s.filter,
		Threads: s.threads,
	}
	if opts.staged {
		cfg.Sources = source.Chain{source.Staged{}}
	}
	ctx := cmd.Context()
	out, err := engine.Run(ctx, cfg)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"source":  out.Source,
		"scanned": out.FilesScanned,
		"skipped": out.FilesSkipped,
		"digest":  out.Digest(),
	}).Debug("scan complete")

	switch s.format {
	case "json":
		err = report.WriteJSON(stdout, out)
	case "sarif":
		prov := git.RepoProvenance(ctx, s.root)
		err = report.WriteSARIF(stdout, out, report.SARIFMeta{
			ToolVersion: version,
			Rules:       s.rules.Names(),
			Repo:        prov.RepositoryURI,
			Commit:      prov.Revision,
			Branch:      prov.Branch,
		})
	default:
		report.WriteText(stdout, stderr, out, report.TextOptions{Color: s.color})
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if report.ExitCode(out) != 0 {
		return errFindings
	}
	return nil
}
