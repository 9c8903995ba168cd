package git

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// validateRoot validates and normalizes a repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	// Check for null bytes (potential injection)
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}

	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}

	return abs, nil
}

// Available reports whether a git binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// run executes git in root and returns stdout. Stderr is captured only for
// the error message.
func run(ctx context.Context, root string, args ...string) ([]byte, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", validRoot}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// splitZ splits NUL-terminated git output, dropping empty entries.
func splitZ(out []byte) []string {
	var paths []string
	for _, p := range bytes.Split(out, []byte{0}) {
		if len(p) > 0 {
			paths = append(paths, string(p))
		}
	}
	return paths
}

// TrackedFiles lists the files in the index under root, relative to root,
// in git's order. Paths use forward slashes.
func TrackedFiles(ctx context.Context, root string) ([]string, error) {
	out, err := run(ctx, root, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	return splitZ(out), nil
}

// StagedFiles lists paths with staged additions, copies, modifications or
// renames under root, relative to root.
func StagedFiles(ctx context.Context, root string) ([]string, error) {
	out, err := run(ctx, root, "diff", "--cached", "--name-only", "--relative", "--diff-filter=ACMR", "-z")
	if err != nil {
		return nil, err
	}
	return splitZ(out), nil
}

// Provenance identifies the checked-out revision for SARIF
// versionControlProvenance. Fields are empty when git cannot tell.
type Provenance struct {
	RepositoryURI string
	Revision      string
	Branch        string
}

// RepoProvenance reads the origin remote, HEAD commit and branch of root.
// Errors leave the matching field empty.
func RepoProvenance(ctx context.Context, root string) Provenance {
	var p Provenance
	if out, err := run(ctx, root, "remote", "get-url", "origin"); err == nil {
		p.RepositoryURI = remoteURI(strings.TrimSpace(string(out)))
	}
	if out, err := run(ctx, root, "rev-parse", "--verify", "HEAD"); err == nil {
		p.Revision = strings.TrimSpace(string(out))
	}
	if out, err := run(ctx, root, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
		p.Branch = strings.TrimSpace(string(out))
	}
	return p
}

// remoteURI turns a git remote into an absolute URI without credentials.
// scp-style remotes (git@host:owner/name.git) become https URLs.
func remoteURI(remote string) string {
	if remote == "" {
		return ""
	}
	if !strings.Contains(remote, "://") {
		host, path, ok := strings.Cut(remote, ":")
		if !ok || len(host) < 2 || strings.ContainsAny(host, "/\\") {
			// local path or drive letter
			return ""
		}
		if _, h, found := strings.Cut(host, "@"); found {
			host = h
		}
		remote = "https://" + host + "/" + strings.TrimPrefix(path, "/")
	}
	u, err := url.Parse(remote)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme == "ssh" || u.Scheme == "git" {
		u.Scheme = "https"
		u.Host = u.Hostname()
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), ".git")
	return u.String()
}
