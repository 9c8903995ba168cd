package git

import (
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// IndexFiles reads tracked paths straight from the repository index without
// a git binary. The repository is discovered from root upwards; only entries
// under root are returned, relative to root, in index order.
func IndexFiles(root string) ([]string, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	repo, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	prefix, err := subdirPrefix(wt.Filesystem.Root(), validRoot)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range idx.Entries {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		paths = append(paths, strings.TrimPrefix(e.Name, prefix))
	}
	return paths, nil
}

// subdirPrefix returns root's slash-separated location inside top, with a
// trailing slash, or "" when root is top itself.
func subdirPrefix(top, root string) (string, error) {
	if t, err := filepath.EvalSymlinks(top); err == nil {
		top = t
	}
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	rel, err := filepath.Rel(top, root)
	if err != nil {
		return "", fmt.Errorf("locate %s in worktree: %w", root, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside worktree %s", root, top)
	}
	return rel + "/", nil
}
