package file_test

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/eraauth/io/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathExpansion(t *testing.T) {
	u, err := user.Current()
	require.NoError(t, err)
	t.Setenv("HOME", u.HomeDir)
	t.Setenv("DDDXXX", "/tmp")
	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"~/tmp":              u.HomeDir + "/tmp",
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/":              "/a/b",
	}
	for test, expected := range tests {
		expanded, err := file.ExpandPath(test)
		require.NoError(t, err)
		assert.Equal(t, expected, expanded)
	}
}

func TestMkdirAll_AlreadyExists_WrongPermissions(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir")
	require.NoError(t, os.MkdirAll(dirName, os.ModePerm))
	err := file.MkdirAll(dirName)
	assert.ErrorContains(t, err, "already exists without proper 0700 permissions")
}

func TestMkdirAll_AlreadyExists_OK(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir")
	require.NoError(t, os.MkdirAll(dirName, file.ReadWriteExecutePermissions))
	assert.NoError(t, file.MkdirAll(dirName))
}

func TestMkdirAll_OK(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir")
	assert.NoError(t, file.MkdirAll(dirName))
	exists, err := file.HasDir(dirName)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteFile_AlreadyExists_WrongPermissions(t *testing.T) {
	someFileName := filepath.Join(t.TempDir(), "somefile.txt")
	require.NoError(t, os.WriteFile(someFileName, []byte("hi"), 0644))
	require.NoError(t, os.Chmod(someFileName, 0644))
	err := file.WriteFile(someFileName, []byte("hi"))
	assert.ErrorContains(t, err, "already exists without proper 0600 permissions")
}

func TestWriteFile_AlreadyExists_OK(t *testing.T) {
	someFileName := filepath.Join(t.TempDir(), "somefile.txt")
	require.NoError(t, os.WriteFile(someFileName, []byte("hi"), file.ReadWritePermissions))
	assert.NoError(t, file.WriteFile(someFileName, []byte("hi")))
}

func TestWriteFile_ReadFileAsBytes(t *testing.T) {
	someFileName := filepath.Join(t.TempDir(), "somefile.ssz")
	require.NoError(t, file.WriteFile(someFileName, []byte{1, 2, 3}))
	assert.True(t, file.FileExists(someFileName))

	got, err := file.ReadFileAsBytes(someFileName)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestReadFileAsBytes_Directory(t *testing.T) {
	_, err := file.ReadFileAsBytes(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
	assert.False(t, file.FileExists(t.TempDir()))
}

func TestWriteFile_CreatesParentAndCleansUp(t *testing.T) {
	root := t.TempDir()
	name := filepath.Join(root, "proofs", "era-800.ssz_snappy")
	require.NoError(t, file.WriteFile(name, []byte{4, 5}))
	require.NoError(t, file.WriteFile(name, []byte{6}))

	got, err := file.ReadFileAsBytes(name)
	require.NoError(t, err)
	assert.Equal(t, []byte{6}, got)

	info, err := os.Stat(filepath.Dir(name))
	require.NoError(t, err)
	assert.Equal(t, file.ReadWriteExecutePermissions, info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(name))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "era-800.ssz_snappy", entries[0].Name())
}
