package engine

import (
	"fmt"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// binary/image/archive suffixes never worth decoding
var defaultSkipExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".pdf", ".zip",
}

// build outputs
var defaultSkipGlobs = []string{
	"backend/bin/**",
}

// PathFilter decides, from the root-relative path alone, whether a file is
// skipped before its content is read.
type PathFilter struct {
	extensions []string
	globs      []string
}

// DefaultPathFilter returns the built-in filter.
func DefaultPathFilter() PathFilter {
	f, _ := NewPathFilter(nil, nil)
	return f
}

// NewPathFilter extends the built-in filter with extra extensions (with or
// without the leading dot) and doublestar globs. Built-ins always apply.
func NewPathFilter(extraExtensions, extraGlobs []string) (PathFilter, error) {
	f := PathFilter{
		extensions: append([]string(nil), defaultSkipExtensions...),
		globs:      append([]string(nil), defaultSkipGlobs...),
	}
	for _, e := range extraExtensions {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.extensions = append(f.extensions, e)
	}
	for _, g := range extraGlobs {
		g = strings.TrimPrefix(strings.TrimSpace(g), "./")
		if g == "" {
			continue
		}
		if !doublestar.ValidatePattern(g) {
			return PathFilter{}, fmt.Errorf("skip_paths: invalid glob %q", g)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// ShouldSkip reports whether rel (slash-separated, relative to the scan
// root) is excluded. Extension checks are case-sensitive suffix tests.
func (f PathFilter) ShouldSkip(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, s := range f.extensions {
		if strings.HasSuffix(rel, s) {
			return true
		}
	}
	for _, g := range f.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}
