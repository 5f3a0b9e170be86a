package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.txt")

	assert.False(t, FileExists(file))

	err := os.WriteFile(file, []byte("content"), 0600)
	assert.NoError(t, err)
	assert.True(t, FileExists(file))

	// A directory is not a file
	assert.False(t, FileExists(dir))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	assert.False(t, DirectoryExists(nested))
	assert.NoError(t, EnsureDirectoryExists(nested))
	assert.True(t, DirectoryExists(nested))

	// Idempotent
	assert.NoError(t, EnsureDirectoryExists(nested))
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sub", "data.txt")

	err := WriteFile(file, []byte("hello"), 0600)
	assert.NoError(t, err)

	data, err := ReadFile(file)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
