package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRunDocument = `{
	"layers": {
		"WALLS": {"entities": [
			{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 1000, "y": 0}},
			{"type": "LINE", "start": {"x": 0, "y": 100}, "end": {"x": 1000, "y": 100}}
		]}
	}
}`

func TestRunPipelineSucceedsWithInMemorySink(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "floor1.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(sampleRunDocument), 0o644))

	cmd := newRunCmd()
	cmd.SetArgs([]string{inputPath, "--layers", "WALLS"})

	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestRunPipelineRejectsMissingLayers(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "floor2.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(sampleRunDocument), 0o644))

	cmd := newRunCmd()
	cmd.SetArgs([]string{inputPath})

	err := cmd.Execute()
	assert.Error(t, err)
}
