package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasExt(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		ext      string
		want     bool
	}{
		{"lowercase_match", "voice.m4a", ".m4a", true},
		{"uppercase_match", "VOICE.M4A", ".m4a", true},
		{"mixed_case_match", "Voice.M4a", ".m4a", true},
		{"different_extension", "notes.txt", ".m4a", false},
		{"no_extension", "README", ".m4a", false},
		{"extension_inside_name", "m4a_backup.tar", ".m4a", false},
		{"dotfile", ".m4a", ".m4a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExt(tt.fileName, tt.ext))
		})
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.m4a"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	fileInfos, err := ListDir(dir)
	require.NoError(t, err)
	require.Len(t, fileInfos, 3)

	byName := map[string]bool{}
	for _, fi := range fileInfos {
		byName[fi.Name] = fi.Regular
		assert.Equal(t, filepath.Join(dir, fi.Name), fi.FullPath)
	}
	assert.True(t, byName["a.m4a"])
	assert.True(t, byName["notes.txt"])
	assert.False(t, byName["nested"], "subdirectory must be reported as non-regular")
}

func TestListDir_MissingDirectory(t *testing.T) {
	_, err := ListDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	t.Run("creates_missing_directory", func(t *testing.T) {
		dir := filepath.Join(base, "out", "deep")
		require.NoError(t, EnsureDir(dir))
		assert.True(t, DirExists(dir))
	})

	t.Run("idempotent_on_existing_directory", func(t *testing.T) {
		dir := filepath.Join(base, "out", "deep")
		require.NoError(t, EnsureDir(dir))
		assert.True(t, DirExists(dir))
	})
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	assert.False(t, Exists(path))
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	assert.True(t, Exists(path))
}
