package notebook

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todopanel/internal/domain"
)

func writeNotebook(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const analysisNotebook = `{
	"cells": [
		{"source": ["import pandas as pd\n", "# TODO: drop the index column\n"]},
		{"source": "df.head()\n# todo : check dtypes"},
		{"source": ["# TODO:   \n", "print('no text after marker')\n"]}
	]
}`

func TestScanExtractsMarkers(t *testing.T) {
	root := t.TempDir()
	writeNotebook(t, filepath.Join(root, "analysis", "report.ipynb"), analysisNotebook)

	s := NewScanner(root, 0, nil)
	items, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "empty marker text must be skipped")

	first := items[0]
	assert.Equal(t, "notebook:analysis/report.ipynb:0:1", first.ID)
	assert.Equal(t, "drop the index column", first.Text)
	assert.Equal(t, domain.SourceNotebook, first.Source)
	assert.Equal(t, "analysis/report.ipynb", first.OriginPath)
	require.NotNil(t, first.OriginCell)
	require.NotNil(t, first.OriginLine)
	assert.Equal(t, 0, *first.OriginCell)
	assert.Equal(t, 1, *first.OriginLine)
	assert.False(t, first.Done)

	// Case-insensitive marker in a string-typed cell source.
	assert.Equal(t, "notebook:analysis/report.ipynb:1:1", items[1].ID)
	assert.Equal(t, "check dtypes", items[1].Text)
}

func TestScanSkipsCheckpointsAndNonNotebooks(t *testing.T) {
	root := t.TempDir()
	writeNotebook(t, filepath.Join(root, ".ipynb_checkpoints", "report-checkpoint.ipynb"), analysisNotebook)
	writeNotebook(t, filepath.Join(root, "notes.txt"), "# TODO: not a notebook")

	s := NewScanner(root, 0, nil)
	items, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScanToleratesCorruptNotebook(t *testing.T) {
	root := t.TempDir()
	writeNotebook(t, filepath.Join(root, "broken.ipynb"), "{not json")
	writeNotebook(t, filepath.Join(root, "good.ipynb"), `{"cells":[{"source":["# TODO: works\n"]}]}`)

	s := NewScanner(root, 0, nil)
	items, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "works", items[0].Text)
}

func TestScanMissingRoot(t *testing.T) {
	s := NewScanner(filepath.Join(t.TempDir(), "does-not-exist"), 0, nil)
	items, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScanServesCachedResultWithinTTL(t *testing.T) {
	root := t.TempDir()
	nbPath := filepath.Join(root, "a.ipynb")
	writeNotebook(t, nbPath, `{"cells":[{"source":["# TODO: first\n"]}]}`)

	s := NewScanner(root, time.Hour, nil)
	ctx := context.Background()

	items, err := s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// The file changes but the cache window has not passed.
	writeNotebook(t, nbPath, `{"cells":[{"source":["# TODO: first\n","# TODO: second\n"]}]}`)
	items, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "cached result must be served inside the TTL")

	s.Invalidate()
	items, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2, "invalidation must force a fresh walk")
}
