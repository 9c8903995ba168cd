package types

import (
	"fmt"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
)

// Finding is a confirmed, unsuppressed rule match at a path and line. It
// carries no matched text, only location and rule identity.
type Finding struct {
	Path string `json:"path"` // slash-separated, relative to the scan root
	Line int    `json:"line"` // 1-based
	Rule string `json:"rule"`
}

// String renders the finding in the report form "path:line (rule)".
func (f Finding) String() string {
	return f.Path + ":" + strconv.Itoa(f.Line) + " (" + f.Rule + ")"
}

// Fingerprint returns a stable 16-hex-digit identifier for the finding's
// location and rule.
func (f Finding) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(f.Path + "|" + strconv.Itoa(f.Line) + "|" + f.Rule))
}

// FileResult is the per-file outcome of a scan. A skipped file has no
// findings; Reason says why it was not scanned.
type FileResult struct {
	Path     string
	Findings []Finding
	Skipped  bool
	Reason   string
}

// Skip reasons recorded on FileResult.
const (
	ReasonFiltered = "filtered"
	ReasonRead     = "read"
	ReasonBinary   = "binary"
)

// Outcome aggregates the findings of one run. Findings are ordered by file
// discovery order, then line, then rule order.
type Outcome struct {
	Findings     []Finding
	Passed       bool
	FilesScanned int
	FilesSkipped int
	Source       string
}

// Digest returns a fingerprint over all findings in order; two runs over an
// unchanged tree produce the same digest.
func (o Outcome) Digest() string {
	d := xxhash.New()
	for _, f := range o.Findings {
		_, _ = d.WriteString(f.Fingerprint())
		_, _ = d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
