package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFmt(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetArgs(append([]string{"fmt"}, args...))
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFmtCompact(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/doc.rson"
	require.NoError(t, os.WriteFile(path, []byte("Point { x: 1, y: 2, }"), 0o644))

	_, err := runFmt(t, path)
	require.NoError(t, err)
}

func TestFmtRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.rson"
	require.NoError(t, os.WriteFile(path, []byte("{ unterminated"), 0o644))

	_, err := runFmt(t, path)
	assert.Error(t, err)
}
