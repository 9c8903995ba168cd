package report

import (
	"encoding/json"
	"io"

	"github.com/w154594742/secretgate/internal/types"
)

type jsonFinding struct {
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Rule        string `json:"rule"`
	Fingerprint string `json:"fingerprint"`
}

type jsonReport struct {
	Passed       bool          `json:"passed"`
	Source       string        `json:"source,omitempty"`
	FilesScanned int           `json:"files_scanned"`
	FilesSkipped int           `json:"files_skipped"`
	Findings     []jsonFinding `json:"findings"`
}

// WriteJSON writes the outcome as a single JSON document.
func WriteJSON(w io.Writer, o types.Outcome) error {
	doc := jsonReport{
		Passed:       o.Passed,
		Source:       o.Source,
		FilesScanned: o.FilesScanned,
		FilesSkipped: o.FilesSkipped,
		Findings:     []jsonFinding{}, // no `null` in JSON
	}
	for _, f := range o.Findings {
		doc.Findings = append(doc.Findings, jsonFinding{Path: f.Path, Line: f.Line, Rule: f.Rule, Fingerprint: f.Fingerprint()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
