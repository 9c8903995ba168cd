package source

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w154594742/secretgate/internal/git"
)

type fakeSource struct {
	name  string
	files []Candidate
	err   error
	calls *int
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Files(context.Context, string) ([]Candidate, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.files, f.err
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func rels(cs []Candidate) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Rel)
	}
	return out
}

func initRepo(t *testing.T) string {
	t.Helper()
	if !git.Available() {
		t.Skip("git binary not available")
	}
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "."},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "tester"},
	} {
		gitRun(t, dir, args...)
	}
	return dir
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, string(out))
	}
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	var laterCalls int
	c := Chain{
		fakeSource{name: "broken", err: errors.New("boom")},
		fakeSource{name: "empty"},
		fakeSource{name: "tracked", files: []Candidate{{Path: "/r/a", Rel: "a"}}},
		fakeSource{name: "walk", files: []Candidate{{Path: "/r/b", Rel: "b"}}, calls: &laterCalls},
	}
	sel := c.Resolve(context.Background(), "/r")
	assert.Equal(t, "tracked", sel.Source)
	assert.Equal(t, []string{"a"}, rels(sel.Files))
	assert.Zero(t, laterCalls, "fallback must not run once a source yields files")
}

func TestChain_AllEmpty(t *testing.T) {
	sel := Chain{fakeSource{name: "a"}, fakeSource{name: "b", err: errors.New("x")}}.Resolve(context.Background(), "/r")
	assert.Empty(t, sel.Source)
	assert.Empty(t, sel.Files)
}

func TestChain_Dedupe(t *testing.T) {
	c := Chain{fakeSource{name: "s", files: []Candidate{
		{Path: "/r/a", Rel: "a"},
		{Path: "/r/b", Rel: "b"},
		{Path: "/r/a", Rel: "a"},
	}}}
	assert.Equal(t, []string{"a", "b"}, rels(c.Resolve(context.Background(), "/r").Files))
}

func TestWalk_PrunesGitAndSorts(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.txt", "b")
	write(t, dir, "a/z.txt", "z")
	write(t, dir, ".git/config", "x")
	write(t, dir, "nested/.git/HEAD", "x")
	write(t, dir, ".github/workflows/ci.yml", "x")

	files, err := Walk{}.Files(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".github/workflows/ci.yml", "a/z.txt", "b.txt"}, rels(files))
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
	}
}

func TestWalk_EmptyTree(t *testing.T) {
	files, err := Walk{}.Files(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := Walk{}.Files(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestWalk_Cancelled(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Walk{}.Files(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefault_PrefersTrackedFiles(t *testing.T) {
	dir := initRepo(t)
	write(t, dir, "tracked.txt", "t")
	write(t, dir, "deleted.txt", "d")
	write(t, dir, ".env", "local only")
	gitRun(t, dir, "add", "tracked.txt", "deleted.txt")
	require.NoError(t, os.Remove(filepath.Join(dir, "deleted.txt")))

	sel := Default().Resolve(context.Background(), dir)
	assert.Equal(t, "git-ls-files", sel.Source)
	assert.Equal(t, []string{"tracked.txt"}, rels(sel.Files))
}

func TestDefault_EmptyRepoFallsBackToWalk(t *testing.T) {
	dir := initRepo(t)
	write(t, dir, "local.txt", "x")

	sel := Default().Resolve(context.Background(), dir)
	assert.Equal(t, "walk", sel.Source)
	assert.Equal(t, []string{"local.txt"}, rels(sel.Files))
}

func TestDefault_NotARepo(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "x.txt", "x")

	sel := Default().Resolve(context.Background(), dir)
	assert.Equal(t, "walk", sel.Source)
	assert.Equal(t, []string{"x.txt"}, rels(sel.Files))
}

func TestGitIndex_MatchesTracked(t *testing.T) {
	dir := initRepo(t)
	write(t, dir, "a.txt", "a")
	write(t, dir, "sub/b.txt", "b")
	write(t, dir, "untracked.txt", "u")
	gitRun(t, dir, "add", "a.txt", "sub/b.txt")

	viaBinary, err := GitTracked{}.Files(context.Background(), dir)
	require.NoError(t, err)
	viaIndex, err := GitIndex{}.Files(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, rels(viaBinary), rels(viaIndex))
}

func TestStaged(t *testing.T) {
	dir := initRepo(t)
	write(t, dir, "old.txt", "o")
	gitRun(t, dir, "add", "old.txt")
	gitRun(t, dir, "commit", "-m", "base")
	write(t, dir, "new.txt", "n")
	gitRun(t, dir, "add", "new.txt")

	sel := Chain{Staged{}}.Resolve(context.Background(), dir)
	assert.Equal(t, "git-staged", sel.Source)
	assert.Equal(t, []string{"new.txt"}, rels(sel.Files))
}

func TestFromRelative_DropsDirectoriesAndMissing(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "f.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0o755))
	got := fromRelative(dir, []string{"f.txt", "d", "missing.txt"})
	assert.Equal(t, []string{"f.txt"}, rels(got))
}
