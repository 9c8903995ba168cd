package secretgate

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// defaultRepoRoot is the parent of the directory holding the executable,
// so a binary kept in <repo>/tools/ scans <repo>. Falls back to ".".
func defaultRepoRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

func setupLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func pickString(cli string, cfg *string, def string) string {
	if cli != "" {
		return cli
	}
	if cfg != nil && *cfg != "" {
		return *cfg
	}
	return def
}

func pickInt(cli int, cfg *int, def int) int {
	if cli != 0 {
		return cli
	}
	if cfg != nil && *cfg != 0 {
		return *cfg
	}
	return def
}

func pickBool(cli bool, cfg *bool) bool {
	if cli {
		return true
	}
	if cfg != nil {
		return *cfg
	}
	return false
}
