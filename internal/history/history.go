// Package history provides launch history storage and retrieval.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the launch history file.
	FileName = "launches.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	// StatusCompleted indicates the entry program exited with status zero.
	StatusCompleted = "completed"
	// StatusFailed indicates the entry program exited nonzero.
	StatusFailed = "failed"
)

// Entry represents a single recorded launch.
type Entry struct {
	// ID is a unique identifier in adjective_noun_YYYYMMDD_HHMMSS format.
	ID string `yaml:"id,omitempty"`
	// Variant is the launched entry program ("console" or "gui").
	Variant string `yaml:"variant"`
	// Status is completed or failed.
	Status string `yaml:"status"`
	// CreatedAt is when the launch started.
	CreatedAt time.Time `yaml:"created_at"`
	// ExitCode is the entry program's exit status (0 = success).
	ExitCode int `yaml:"exit_code"`
	// Duration is the run duration in Go duration format (e.g., "2m15s").
	Duration string `yaml:"duration"`
}

// File represents the YAML file containing all launch records.
type File struct {
	// Entries is an ordered list of launches, newest appended at the end.
	Entries []Entry `yaml:"entries"`
}

// Load loads the history file from the given state directory.
// Returns empty history if the file doesn't exist. A corrupted file is
// backed up and replaced with fresh history rather than failing the launch.
func Load(stateDir string) (*File, error) {
	path := filepath.Join(stateDir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Entries: []Entry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		if backupErr := backupCorruptedFile(path); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &File{Entries: []Entry{}}, nil
	}

	if f.Entries == nil {
		f.Entries = []Entry{}
	}
	return &f, nil
}

// Save saves the history file to the given state directory using an atomic
// rename. Creates parent directories if needed.
func Save(stateDir string, f *File) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	path := filepath.Join(stateDir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

// Append loads the history, appends the entry, and saves it back.
// Generates an ID when the entry has none.
func Append(stateDir string, entry Entry) error {
	f, err := Load(stateDir)
	if err != nil {
		return err
	}

	if entry.ID == "" {
		id, err := GenerateID()
		if err != nil {
			return err
		}
		entry.ID = id
	}

	f.Entries = append(f.Entries, entry)
	return Save(stateDir, f)
}

// backupCorruptedFile renames a corrupted file with a .backup suffix.
func backupCorruptedFile(path string) error {
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}
