//go:build integration

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ExportCommand(t *testing.T) {
	if os.Getenv("CHROME_PATH") == "" {
		t.Skip("CHROME_PATH not set, skipping integration test")
	}

	dir := t.TempDir()
	in := writeJSON(t, dir, "cv.json", sampleCV())
	t.Chdir(dir)

	out, err := runCLI(t, "export", "--in", in, "--template", "modern")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace_Resume.pdf")

	pdf, err := os.ReadFile(filepath.Join(dir, "Ada Lovelace_Resume.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF")
}
