package history

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyHistory(t *testing.T) {
	f, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, f.Entries)
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	stateDir := t.TempDir()
	started := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)

	require.NoError(t, Append(stateDir, Entry{
		Variant:   "console",
		Status:    StatusCompleted,
		CreatedAt: started,
		ExitCode:  0,
		Duration:  "2m15s",
	}))
	require.NoError(t, Append(stateDir, Entry{
		Variant:   "gui",
		Status:    StatusFailed,
		CreatedAt: started.Add(5 * time.Minute),
		ExitCode:  1,
		Duration:  "30s",
	}))

	f, err := Load(stateDir)
	require.NoError(t, err)
	require.Len(t, f.Entries, 2)

	assert.Equal(t, "console", f.Entries[0].Variant)
	assert.Equal(t, StatusCompleted, f.Entries[0].Status)
	assert.NotEmpty(t, f.Entries[0].ID, "append should generate an ID")

	assert.Equal(t, "gui", f.Entries[1].Variant)
	assert.Equal(t, StatusFailed, f.Entries[1].Status)
	assert.Equal(t, 1, f.Entries[1].ExitCode)
}

func TestLoadCorruptedFileBacksUpAndResets(t *testing.T) {
	stateDir := t.TempDir()
	path := filepath.Join(stateDir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("{{{ not yaml"), 0644))

	f, err := Load(stateDir)
	require.NoError(t, err)
	assert.Empty(t, f.Entries)

	assert.FileExists(t, path+BackupSuffix, "corrupted file should be backed up")
	assert.NoFileExists(t, path)
}

func TestSaveCreatesStateDir(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "nested", "state")

	require.NoError(t, Save(stateDir, &File{Entries: []Entry{{Variant: "console"}}}))

	f, err := Load(stateDir)
	require.NoError(t, err)
	assert.Len(t, f.Entries, 1)
}

func TestGenerateIDFormat(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^[a-z]+_[a-z]+_\d{8}_\d{6}$`)
	assert.Regexp(t, pattern, id)
}

func TestGenerateIDUsesKnownWords(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)

	parts := regexp.MustCompile(`_`).Split(id, 3)
	require.Len(t, parts, 3)
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, nouns, parts[1])
}
