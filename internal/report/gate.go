package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/w154594742/secretgate/internal/types"
)

const (
	FailHeader = "Secret scan FAILED. Potential secrets detected:"
	OKMessage  = "Secret scan OK"
	// Hint is printed once after the finding list.
	Hint = "Remove the value or inject it through an environment variable, or use an explicit placeholder (e.g. GOCSPX-your-client-secret)."
)

// Gate turns findings into an outcome: any finding fails the run.
func Gate(findings []types.Finding) types.Outcome {
	return types.Outcome{Findings: findings, Passed: len(findings) == 0}
}

// ExitCode maps an outcome to the process exit code: 0 passed, 1 failed.
func ExitCode(o types.Outcome) int {
	if o.Passed {
		return 0
	}
	return 1
}

// TextOptions controls the plain-text report.
type TextOptions struct {
	// Color styles the headline; finding lines are never styled.
	Color bool
}

// WriteText prints the outcome. A pass writes one line to stdout; a failure
// writes the header, one "- path:line (rule)" line per finding and the hint
// to stderr. Only location and rule name are ever printed.
func WriteText(stdout, stderr io.Writer, o types.Outcome, opts TextOptions) {
	if o.Passed {
		_, _ = fmt.Fprintln(stdout, headline(stdout, OKMessage, "2", opts.Color))
		return
	}
	_, _ = fmt.Fprintln(stderr, headline(stderr, FailHeader, "1", opts.Color))
	for _, f := range o.Findings {
		_, _ = fmt.Fprintf(stderr, "- %s\n", f)
	}
	_, _ = fmt.Fprintf(stderr, "\n%s\n", Hint)
}

func headline(w io.Writer, s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(s)
}
