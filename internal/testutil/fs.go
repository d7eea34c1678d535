package testutil

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// MemRoot is the storage root MemFS creates.
const MemRoot = "/data"

// MemFS returns an in-memory filesystem with MemRoot already created.
func MemFS(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll(MemRoot, 0o755))
	return fs
}

// ReadFile returns the raw bytes stored at path.
func ReadFile(t *testing.T, fs billy.Filesystem, path string) []byte {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	require.NoError(t, err)
	return data
}

// WriteFile writes raw bytes at path, creating parent directories.
func WriteFile(t *testing.T, fs billy.Filesystem, path string, data []byte) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, data, 0o644))
}

// Exists reports whether path exists in fs.
func Exists(t *testing.T, fs billy.Filesystem, path string) bool {
	t.Helper()
	_, err := fs.Stat(path)
	return err == nil
}
