package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runQuery(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := writeSnapshot(t)
	config := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"query", "--config", config, "--notes", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestQuery_RanksResults(t *testing.T) {
	out, err := runQuery(t, "alpha")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "  5  a  ")
	assert.Contains(t, out, "content:")
	assert.Contains(t, out, "category:")
	assert.NotContains(t, out, "quick")
}

func TestQuery_WholeWord(t *testing.T) {
	out, err := runQuery(t, "--word", "qui")
	require.NoError(t, err)
	assert.Equal(t, "no results\n", out)

	out, err = runQuery(t, "qui")
	require.NoError(t, err)
	assert.Contains(t, out, "The quick brown")
	assert.NotContains(t, out, "\x1b[", "piped output is unstyled")
}

func TestQuery_FiltersOnly(t *testing.T) {
	out, err := runQuery(t, "--priority", "HIGH", "--json")
	require.NoError(t, err)

	var results []struct {
		Note struct {
			ID string `json:"id"`
		} `json:"note"`
		Score   int   `json:"score"`
		Matches []any `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Note.ID)
	assert.Equal(t, "c", results[1].Note.ID)
	for _, r := range results {
		assert.Equal(t, 1, r.Score)
		assert.Empty(t, r.Matches)
	}
}

func TestQuery_CategoryByName(t *testing.T) {
	out, err := runQuery(t, "--category", "home", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "c"`)
	assert.NotContains(t, out, `"id": "a"`)

	out, err = runQuery(t, "--category", "Home", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "c"`)
}

func TestQuery_DateRange(t *testing.T) {
	out, err := runQuery(t, "--from", "2024-03-15", "--to", "2024-03-25", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "b"`)
	assert.NotContains(t, out, `"id": "a"`)
	assert.NotContains(t, out, `"id": "c"`)
}

func TestQuery_JSONContexts(t *testing.T) {
	out, err := runQuery(t, "--json", "--no-categories", "alpha")
	require.NoError(t, err)

	var results []jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].Score)
	require.Len(t, results[0].Contexts, 2)
	assert.Equal(t, "alpha alpha", results[0].Contexts[1].Text)
	assert.Equal(t, 6, results[0].Contexts[1].HighlightStart)
	assert.Equal(t, 11, results[0].Contexts[1].HighlightEnd)
}

func TestQuery_InvalidRegexStillAnswers(t *testing.T) {
	out, err := runQuery(t, "--regex", "milk(")
	require.NoError(t, err)
	assert.Equal(t, "no results\n", out)
}

func TestQuery_Inactive(t *testing.T) {
	out, err := runQuery(t)
	require.NoError(t, err)
	assert.Equal(t, "nothing to search for\n", out)
}

func TestQuery_BadFlags(t *testing.T) {
	_, err := runQuery(t, "--priority", "urgent", "x")
	assert.ErrorContains(t, err, "unknown priority")

	_, err = runQuery(t, "--from", "yesterday", "x")
	assert.ErrorContains(t, err, "--from")
}
