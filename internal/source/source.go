package source

import (
	"context"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Candidate is a file chosen for scanning: an absolute path that existed as
// a regular file at discovery time, plus its slash-separated path relative
// to the scan root.
type Candidate struct {
	Path string
	Rel  string
}

// Source produces candidate files under root. Implementations report their
// own failures as errors; callers decide whether a failure is fatal.
type Source interface {
	Name() string
	Files(ctx context.Context, root string) ([]Candidate, error)
}

// Selection is the outcome of resolving a Chain.
type Selection struct {
	Source string
	Files  []Candidate
}

// Chain tries sources in order and keeps the first non-empty result.
// A failing source counts as empty; discovery never aborts a run.
type Chain []Source

// Default is the standard priority order: tracked files via the git binary,
// tracked files via the index, then a full tree walk.
func Default() Chain {
	return Chain{GitTracked{}, GitIndex{}, Walk{}}
}

// Resolve runs the chain against root. Root must be absolute.
func (c Chain) Resolve(ctx context.Context, root string) Selection {
	for _, s := range c {
		files, err := s.Files(ctx, root)
		if err != nil {
			log.WithField("source", s.Name()).Debugf("source unavailable: %v", err)
			continue
		}
		if len(files) == 0 {
			log.WithField("source", s.Name()).Debug("source yielded no files")
			continue
		}
		files = dedupe(files)
		log.WithField("source", s.Name()).Debugf("%d candidate files", len(files))
		return Selection{Source: s.Name(), Files: files}
	}
	return Selection{}
}

func dedupe(files []Candidate) []Candidate {
	seen := make(map[string]bool, len(files))
	out := files[:0:0]
	for _, f := range files {
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		out = append(out, f)
	}
	return out
}

// fromRelative turns root-relative paths into candidates, dropping entries
// that no longer exist as regular files (e.g. deleted in the working tree).
func fromRelative(root string, rels []string) []Candidate {
	var out []Candidate
	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, Candidate{Path: p, Rel: filepath.ToSlash(rel)})
	}
	return out
}
