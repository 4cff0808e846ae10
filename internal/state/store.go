package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/danieljhkim/themereset/internal/fsops"
	"github.com/danieljhkim/themereset/internal/hash"
	"github.com/danieljhkim/themereset/internal/theme"
)

// Snapshot is a decoded widget snapshot.
type Snapshot struct {
	// Path is where the snapshot was read from
	Path string

	// Hash fingerprints the bytes Instances was decoded from
	Hash string

	// Instances holds the widgets in document order
	Instances *theme.Collection
}

// SnapshotStore provides an interface for reading and writing reset inputs.
type SnapshotStore interface {
	// LoadSnapshot reads and decodes the snapshot at path.
	// Returns an error wrapping os.ErrNotExist if the file doesn't exist.
	LoadSnapshot(path string) (*Snapshot, error)

	// SnapshotHash fingerprints the current content of the snapshot at path.
	SnapshotHash(path string) (string, error)

	// SaveSnapshot encodes instances and writes them to path atomically.
	// It returns the fingerprint of the written content.
	SaveSnapshot(path string, instances *theme.Collection) (string, error)

	// LoadTheme reads the theme at path. variant selects editModeTheme or
	// publishedTheme when the file is an application export.
	LoadTheme(path, variant string) (*theme.Theme, error)
}

// FileSnapshotStore implements SnapshotStore on top of fsops.FS.
type FileSnapshotStore struct {
	fs            fsops.FS
	hasher        hash.Hasher
	rootSchemaKey string
}

// NewFileSnapshotStore creates a new FileSnapshotStore. rootSchemaKey is
// the preferred key of form schema roots; empty selects the default.
func NewFileSnapshotStore(fs fsops.FS, hasher hash.Hasher, rootSchemaKey string) *FileSnapshotStore {
	if rootSchemaKey == "" {
		rootSchemaKey = theme.DefaultRootSchemaKey
	}
	return &FileSnapshotStore{
		fs:            fs,
		hasher:        hasher,
		rootSchemaKey: rootSchemaKey,
	}
}

func (s *FileSnapshotStore) read(path, what string) ([]byte, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s %s: %w", what, path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read %s: %w", what, err)
	}
	return data, nil
}

// LoadSnapshot reads and decodes the snapshot at path.
func (s *FileSnapshotStore) LoadSnapshot(path string) (*Snapshot, error) {
	data, err := s.read(path, "snapshot")
	if err != nil {
		return nil, err
	}

	instances, err := theme.DecodeCollectionWithRoot(data, s.rootSchemaKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	return &Snapshot{
		Path:      path,
		Hash:      s.hasher.HashBytes(data),
		Instances: instances,
	}, nil
}

// SnapshotHash fingerprints the current content of the snapshot at path.
func (s *FileSnapshotStore) SnapshotHash(path string) (string, error) {
	data, err := s.read(path, "snapshot")
	if err != nil {
		return "", err
	}
	return s.hasher.HashBytes(data), nil
}

// SaveSnapshot encodes instances and writes them to path atomically.
func (s *FileSnapshotStore) SaveSnapshot(path string, instances *theme.Collection) (string, error) {
	data, err := theme.EncodeCollection(instances)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return s.hasher.HashBytes(data), nil
}

// LoadTheme reads and decodes the theme at path.
func (s *FileSnapshotStore) LoadTheme(path, variant string) (*theme.Theme, error) {
	data, err := s.read(path, "theme")
	if err != nil {
		return nil, err
	}

	t, err := theme.DecodeTheme(data, variant)
	if err != nil {
		return nil, fmt.Errorf("failed to decode theme %s: %w", path, err)
	}
	return t, nil
}
