package secretgate

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errFindings signals a completed scan that found secrets. It maps to exit
// code 1; every other error maps to 2.
var errFindings = errors.New("potential secrets detected")

type options struct {
	repoRoot string
	config   string
	staged   bool
	format   string
	threads  int
	noColor  bool
	verbose  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "secretgate",
		Short:         "Fail the build when credential strings are committed",
		Long:          "secretgate scans the tracked files of a repository (or the whole tree outside git) for credential patterns and reports only file, line and rule.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.PersistentFlags()
	f.StringVar(&opts.repoRoot, "repo-root", defaultRepoRoot(), "repository root to scan")
	f.StringVar(&opts.config, "config", "", "explicit YAML config file")
	f.BoolVar(&opts.verbose, "verbose", false, "debug logging to stderr")
	cmd.Flags().BoolVar(&opts.staged, "staged", false, "scan only files staged for commit")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: text|json|sarif (default text)")
	cmd.Flags().IntVar(&opts.threads, "threads", 0, "files scanned concurrently (default 1)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colorized output")

	cmd.AddCommand(newRulesCmd(opts, stdout, stderr), newVersionCmd(stdout))
	return cmd
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFindings):
		return 1
	default:
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
}

// Execute runs the CLI. It should be called by the main package.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
