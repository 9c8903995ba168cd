package secretgate

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/w154594742/secretgate/internal/rules"
)

func newRulesCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active rules",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			setupLogging(stderr, opts.verbose)
			root, err := filepath.Abs(opts.repoRoot)
			if err != nil {
				return fmt.Errorf("repo root: %w", err)
			}
			fc, err := loadConfig(root, opts.config)
			if err != nil {
				return err
			}
			rs, err := rules.Compile(fc.Rules, fc.DisableRules)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tPATTERN\tALLOWLIST")
			for _, r := range rs.Rules() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Name(), r.Pattern(), len(r.Allowlist()))
			}
			return tw.Flush()
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(stdout, "secretgate", version)
		},
	}
}
