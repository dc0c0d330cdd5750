package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "x360ce.ini")

	created, err := WriteIfMissing(path, DefaultIni)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("[Options]\n"), 0644))
	created, err = WriteIfMissing(path, DefaultIni)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Options]\n", string(data))
}

func TestEmbedded(t *testing.T) {
	assert.Contains(t, string(DefaultIni), "[Mappings]")
	assert.Contains(t, string(DefaultGameDb), "HookMask=")
}
