package source

import (
	"context"

	"github.com/w154594742/secretgate/internal/git"
)

// GitTracked lists tracked files with the git binary.
type GitTracked struct{}

func (GitTracked) Name() string { return "git-ls-files" }

func (GitTracked) Files(ctx context.Context, root string) ([]Candidate, error) {
	rels, err := git.TrackedFiles(ctx, root)
	if err != nil {
		return nil, err
	}
	return fromRelative(root, rels), nil
}

// GitIndex lists tracked files by reading the index directly. It gives the
// same set as GitTracked when no usable git binary is present.
type GitIndex struct{}

func (GitIndex) Name() string { return "git-index" }

func (GitIndex) Files(_ context.Context, root string) ([]Candidate, error) {
	rels, err := git.IndexFiles(root)
	if err != nil {
		return nil, err
	}
	return fromRelative(root, rels), nil
}

// Staged lists files with staged changes.
type Staged struct{}

func (Staged) Name() string { return "git-staged" }

func (Staged) Files(ctx context.Context, root string) ([]Candidate, error) {
	rels, err := git.StagedFiles(ctx, root)
	if err != nil {
		return nil, err
	}
	return fromRelative(root, rels), nil
}
