package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/noelzubin/notefind/notes"
	"github.com/stretchr/testify/require"
)

const notesJSON = `[
	{"id": "a", "content": "alpha alpha", "timestamp": "2024-03-10T12:00:00Z", "categoryId": "alpha", "priority": "medium"},
	{"id": "b", "content": "The quick brown fox jumps over the lazy dog", "timestamp": "2024-03-20T12:00:00Z", "priority": "high"},
	{"id": "c", "content": "shopping list: milk, eggs", "timestamp": "2024-04-01T18:30:00Z", "categoryId": "home", "priority": "high"}
]`

const categoriesJSON = `[
	{"id": "alpha", "name": "alpha", "color": "#ff00ff"},
	{"id": "home", "name": "Home", "color": "#00ff00"}
]`

// writeSnapshot creates a notes directory and points HOME at a temp dir.
func writeSnapshot(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, notes.NotesFile), []byte(notesJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, notes.CategoriesFile), []byte(categoriesJSON), 0o600))
	return dir
}
