// Package persist keeps the reset journal.
//
// Every reset that writes a snapshot records an Entry: when it ran, which
// files it read, the fingerprints of the snapshot before and after, and the
// update commands that were applied. Entries live one JSON file each in the
// journal directory and are named so that lexical order is chronological.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danieljhkim/themereset/internal/fsops"
	"github.com/danieljhkim/themereset/internal/hash"
	"github.com/danieljhkim/themereset/internal/planner"
)

const entryExt = ".json"

// idTimeLayout sorts lexically in time order.
const idTimeLayout = "20060102T150405.000000000Z"

// ErrEntryNotFound is returned when a journal entry does not exist.
var ErrEntryNotFound = errors.New("journal entry not found")

// Entry records one applied reset.
type Entry struct {
	ID         string                  `json:"id"`
	Timestamp  time.Time               `json:"timestamp"`
	Snapshot   string                  `json:"snapshot"`
	Theme      string                  `json:"theme"`
	Variant    string                  `json:"variant,omitempty"`
	BeforeHash string                  `json:"beforeHash"`
	AfterHash  string                  `json:"afterHash"`
	Commands   []planner.UpdateCommand `json:"commands"`
}

// ModificationCount returns the number of property writes in the entry.
func (e *Entry) ModificationCount() int {
	n := 0
	for _, cmd := range e.Commands {
		n += cmd.Modifications.Len()
	}
	return n
}

// EntryID derives the journal ID for a reset run at ts against a snapshot
// with the given fingerprint.
func EntryID(ts time.Time, snapshotHash string) string {
	return ts.UTC().Format(idTimeLayout) + "-" + hash.Short(snapshotHash, 8)
}

// Journal stores entries under a directory.
type Journal struct {
	fs  fsops.FS
	dir string
}

// NewJournal creates a Journal rooted at dir.
func NewJournal(fs fsops.FS, dir string) *Journal {
	return &Journal{fs: fs, dir: dir}
}

// Dir returns the journal directory.
func (j *Journal) Dir() string {
	return j.dir
}

// Record writes entry. An empty ID is derived from the timestamp and the
// before-fingerprint.
func (j *Journal) Record(entry *Entry) error {
	if entry.ID == "" {
		entry.ID = EntryID(entry.Timestamp, entry.BeforeHash)
	}
	if err := j.fs.ValidateIdentifier(entry.ID); err != nil {
		return fmt.Errorf("invalid journal entry ID: %w", err)
	}
	if entry.Commands == nil {
		entry.Commands = []planner.UpdateCommand{}
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	if err := j.fs.AtomicWrite(j.path(entry.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

// Get loads a single entry.
func (j *Journal) Get(id string) (*Entry, error) {
	if err := j.fs.ValidateIdentifier(id); err != nil {
		return nil, fmt.Errorf("invalid journal entry ID: %w", err)
	}

	data, err := j.fs.ReadFile(j.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}
		return nil, fmt.Errorf("failed to read journal entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal entry %s: %w", id, err)
	}
	return &entry, nil
}

// List returns entries newest first. limit <= 0 returns all of them.
func (j *Journal) List(limit int) ([]*Entry, error) {
	names, err := j.fs.ListFiles(j.dir, entryExt)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	entries := make([]*Entry, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		entry, err := j.Get(strings.TrimSuffix(names[i], entryExt))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (j *Journal) path(id string) string {
	return filepath.Join(j.dir, id+entryExt)
}
