package report

import (
	"encoding/json"
	"io"

	"github.com/w154594742/secretgate/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool                     sarifTool        `json:"tool"`
	Results                  []sarifResult    `json:"results"`
	VersionControlProvenance []sarifVCSDetail `json:"versionControlProvenance,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

type sarifVCSDetail struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

// SARIFMeta carries tool and repository details for the SARIF run.
type SARIFMeta struct {
	ToolVersion string
	Rules       []string // active rule names, in order
	Repo        string
	Commit      string
	Branch      string
}

// WriteSARIF writes the outcome as SARIF 2.1.0. Messages name the rule only.
func WriteSARIF(w io.Writer, o types.Outcome, meta SARIFMeta) error {
	index := map[string]int{}
	driver := sarifDriver{Name: "secretgate", Version: meta.ToolVersion, Rules: []sarifRule{}}
	addRule := func(id string) int {
		if i, ok := index[id]; ok {
			return i
		}
		index[id] = len(driver.Rules)
		driver.Rules = append(driver.Rules, sarifRule{ID: id, ShortDescription: sarifMessage{Text: id + " credential pattern"}})
		return index[id]
	}
	for _, id := range meta.Rules {
		addRule(id)
	}

	run := sarifRun{Results: []sarifResult{}}
	for _, f := range o.Findings {
		run.Results = append(run.Results, sarifResult{
			RuleID:    f.Rule,
			RuleIndex: addRule(f.Rule),
			Level:     "error",
			Message:   sarifMessage{Text: f.Rule + " detected"},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region:           sarifRegion{StartLine: f.Line},
				},
			}},
			PartialFingerprints: map[string]string{"secretgate/v1": f.Fingerprint()},
		})
	}
	run.Tool = sarifTool{Driver: driver}
	if meta.Repo != "" {
		run.VersionControlProvenance = []sarifVCSDetail{{RepositoryURI: meta.Repo, RevisionID: meta.Commit, Branch: meta.Branch}}
	}

	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
