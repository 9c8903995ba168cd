package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_EmptyTreePasses(t *testing.T) {
	out, err := Scan(context.Background(), Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, out.Passed)
	assert.Empty(t, out.Findings)
}

func TestScan_DefaultsApply(t *testing.T) {
	root := t.TempDir()
	key := "AIza" + strings.Repeat("Q", 35)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("k="+key+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.png"), []byte("k="+key+"\n"), 0o644))

	out, err := Scan(context.Background(), Config{Root: root})
	require.NoError(t, err)
	assert.False(t, out.Passed)
	require.Len(t, out.Findings, 1)
	assert.Equal(t, Finding{Path: "a.txt", Line: 1, Rule: "google_api_key"}, out.Findings[0])

	out, err = Scan(context.Background(), Config{Root: root, DisableRules: []string{"google_api_key"}})
	require.NoError(t, err)
	assert.True(t, out.Passed)
}

func TestScan_ConfigErrors(t *testing.T) {
	_, err := Scan(context.Background(), Config{Root: t.TempDir(), ExtraRules: []RuleSpec{{Name: "x", Pattern: "("}}})
	require.Error(t, err)
	_, err = Scan(context.Background(), Config{Root: t.TempDir(), SkipPaths: []string{"["}})
	require.Error(t, err)
}

func TestRuleNames(t *testing.T) {
	assert.Equal(t, []string{"google_oauth_client_secret", "google_api_key"}, RuleNames())
}

func TestOutcomeJSONRoundTrip(t *testing.T) {
	o := Outcome{Findings: []Finding{{Path: "x/y.go", Line: 9, Rule: "google_api_key"}}}
	var buf bytes.Buffer
	require.NoError(t, MarshalOutcome(&buf, o))
	got, err := UnmarshalFindings(&buf)
	require.NoError(t, err)
	assert.Equal(t, o.Findings, got)

	_, err = UnmarshalFindings(strings.NewReader("{"))
	require.Error(t, err)
}
