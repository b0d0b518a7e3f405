package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/doc.rson"
	require.NoError(t, os.WriteFile(path, []byte("true"), 0o644))

	data, name, err := readInput([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "true", string(data))
	assert.Equal(t, path, name)
}

func TestReadInputMissingFile(t *testing.T) {
	_, _, err := readInput([]string{"/no/such/file.rson"})
	assert.Error(t, err)
}
