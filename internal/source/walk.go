package source

import (
	"context"
	"io/fs"
	"path/filepath"
)

// metadataDir is pruned from tree walks.
const metadataDir = ".git"

// Walk yields every regular file under root in lexical order, skipping
// version-control metadata directories. Unreadable directories are skipped.
type Walk struct{}

func (Walk) Name() string { return "walk" }

func (Walk) Files(ctx context.Context, root string) ([]Candidate, error) {
	var out []Candidate
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == metadataDir && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		out = append(out, Candidate{Path: p, Rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
