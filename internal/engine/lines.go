package engine

import (
	"os"
	"unicode/utf8"

	"github.com/w154594742/secretgate/internal/rules"
	"github.com/w154594742/secretgate/internal/source"
	"github.com/w154594742/secretgate/internal/types"
)

// LineScanner runs a RuleSet over the lines of one file. Failures never
// escape: an unreadable or non-UTF-8 file becomes a skipped FileResult.
type LineScanner struct {
	Rules    rules.RuleSet
	ReadFile func(name string) ([]byte, error)
}

// NewLineScanner returns a scanner reading from the local filesystem.
func NewLineScanner(rs rules.RuleSet) LineScanner {
	return LineScanner{Rules: rs, ReadFile: os.ReadFile}
}

// Scan reads and scans one candidate.
func (s LineScanner) Scan(c source.Candidate) types.FileResult {
	read := s.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	b, err := read(c.Path)
	if err != nil {
		return types.FileResult{Path: c.Rel, Skipped: true, Reason: types.ReasonRead}
	}
	if !utf8.Valid(b) {
		return types.FileResult{Path: c.Rel, Skipped: true, Reason: types.ReasonBinary}
	}
	return types.FileResult{Path: c.Rel, Findings: ScanText(c.Rel, string(b), s.Rules)}
}

// ScanText evaluates every rule against every line of text, in line order
// then rule order. Matched text is never kept.
func ScanText(rel, text string, rs rules.RuleSet) []types.Finding {
	var out []types.Finding
	for i, line := range splitLines(text) {
		for _, name := range rs.MatchLine(line) {
			out = append(out, types.Finding{Path: rel, Line: i + 1, Rule: name})
		}
	}
	return out
}

// splitLines splits on universal newlines: \r\n, \n, \r, \v, \f, the ASCII
// file/group/record separators, NEL, and the Unicode line and paragraph
// separators. A trailing terminator does not add an empty line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				size = 2
			}
			start = i + size
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			lines = append(lines, s[start:i])
			start = i + size
		}
		i += size
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
