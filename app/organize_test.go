package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/file-organizer/pkg/lock"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newOptions(t *testing.T, dir string, console *bytes.Buffer) *OrganizeOptions {
	t.Helper()
	return &OrganizeOptions{
		Directory: dir,
		LogLevel:  "info",
		LogFile:   filepath.Join(t.TempDir(), "file_organizer.log"),
		LogFormat: "text",
		LockDir:   t.TempDir(),
		Console:   console,
	}
}

func TestRunOrganize(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{"a.JPG": "a", "b.docx": "b", "c.xyz": "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	var console bytes.Buffer
	opts := newOptions(t, dir, &console)

	result, err := RunOrganize(opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Moved)

	for _, path := range []string{"Images/a.JPG", "Documents/b.docx", "Others/c.xyz"} {
		_, err := os.Stat(filepath.Join(dir, path))
		assert.NoError(t, err, path)
	}

	out := console.String()
	assert.Contains(t, out, "Moved: a.JPG -> Images\n")
	assert.Contains(t, out, "Moved: b.docx -> Documents\n")
	assert.Contains(t, out, "Moved: c.xyz -> Others\n")

	logData, err := os.ReadFile(opts.LogFile)
	require.NoError(t, err)
	log := string(logData)
	assert.Contains(t, log, "INFO - Created folder: "+filepath.Join(dir, "Images"))
	assert.Contains(t, log, "INFO - Moved file: a.JPG to Images")
	assert.Contains(t, log, "run_id=")
}

func TestRunOrganize_DirectoryNotFound(t *testing.T) {
	var console bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing")
	opts := newOptions(t, missing, &console)

	result, err := RunOrganize(opts)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, organizer.ErrDirectoryNotFound))
	assert.Equal(t, "Error: The directory '"+missing+"' does not exist.\n", console.String())

	logData, err := os.ReadFile(opts.LogFile)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(logData), "ERROR - "))

	_, err = os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestRunOrganize_LogFileInTargetIsKept(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	var console bytes.Buffer
	opts := newOptions(t, dir, &console)
	opts.LogFile = filepath.Join(dir, "file_organizer.log")

	result, err := RunOrganize(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Moved)

	_, err = os.Stat(opts.LogFile)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "Others", "file_organizer.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunOrganize_Locked(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	var console bytes.Buffer
	opts := newOptions(t, dir, &console)

	held, err := lock.ForDirectory(dir, opts.LockDir)
	require.NoError(t, err)
	require.NoError(t, held.TryLock())
	defer held.Unlock()

	_, err = RunOrganize(opts)
	assert.True(t, errors.Is(err, lock.ErrLocked))

	_, err = os.Stat(filepath.Join(dir, "a.txt"))
	assert.NoError(t, err)
}

func TestRunOrganize_InvalidConflict(t *testing.T) {
	var console bytes.Buffer
	opts := newOptions(t, t.TempDir(), &console)
	opts.Conflict = "merge"

	_, err := RunOrganize(opts)
	assert.Error(t, err)
}

func TestExcludedNames(t *testing.T) {
	dir := t.TempDir()

	assert.Nil(t, excludedNames(dir, ""))
	assert.Nil(t, excludedNames(dir, filepath.Join(t.TempDir(), "x.log")))
	assert.Equal(t, []string{"x.log"}, excludedNames(dir, filepath.Join(dir, "x.log")))
}

func TestRunOrganize_DirectoryNotFoundWithUnusableLockDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	var console bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing")
	opts := newOptions(t, missing, &console)
	opts.LockDir = filepath.Join(blocker, "locks")

	_, err := RunOrganize(opts)
	assert.True(t, errors.Is(err, organizer.ErrDirectoryNotFound))
	assert.Equal(t, "Error: The directory '"+missing+"' does not exist.\n", console.String())
}

func TestRunOrganize_UnusableLockDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	var console bytes.Buffer
	opts := newOptions(t, dir, &console)
	opts.LockDir = filepath.Join(blocker, "locks")

	_, err := RunOrganize(opts)
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "a.txt"))
	assert.NoError(t, err)
}

func TestExcludedNames_Symlink(t *testing.T) {
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	assert.Equal(t, []string{"x.log"}, excludedNames(link, filepath.Join(target, "x.log")))
	assert.Equal(t, []string{"x.log"}, excludedNames(target, filepath.Join(link, "x.log")))
}

func TestRunOrganize_LogFileReachedThroughSymlink(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("a"), 0644))
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	var console bytes.Buffer
	opts := newOptions(t, link, &console)
	opts.LogFile = filepath.Join(target, "file_organizer.log")

	result, err := RunOrganize(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Moved)

	_, err = os.Stat(opts.LogFile)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "Others", "file_organizer.log"))
	assert.True(t, os.IsNotExist(err))
}
