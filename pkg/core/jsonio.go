package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/w154594742/secretgate/internal/report"
)

// MarshalOutcome writes the outcome in the CLI's JSON report format.
func MarshalOutcome(w io.Writer, o Outcome) error {
	return report.WriteJSON(w, o)
}

// UnmarshalFindings decodes the findings of a JSON report, useful for
// ingestion tests.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var doc struct {
		Findings []Finding `json:"findings"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return doc.Findings, nil
}
