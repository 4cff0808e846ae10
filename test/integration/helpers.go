package integration

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danieljhkim/themereset/internal/clock"
	"github.com/danieljhkim/themereset/internal/engine"
	"github.com/danieljhkim/themereset/internal/fsops"
	"github.com/danieljhkim/themereset/internal/hash"
	"github.com/danieljhkim/themereset/internal/persist"
	"github.com/danieljhkim/themereset/internal/planner"
	"github.com/danieljhkim/themereset/internal/state"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	// afterRead runs after every successful read, outside the lock.
	afterRead func(path string)
}

var _ fsops.FS = (*testFS)(nil)

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	fs.mu.Lock()
	content, ok := fs.files[path]
	hook := fs.afterRead
	fs.mu.Unlock()

	if !ok {
		return nil, os.ErrNotExist
	}
	if hook != nil {
		hook(path)
	}
	return append([]byte(nil), content...), nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = append([]byte(nil), data...)
	fs.dirs[filepath.Dir(path)] = true
	return nil
}

func (fs *testFS) Exists(path string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
	return nil
}

func (fs *testFS) ListFiles(dir, ext string) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var names []string
	for p := range fs.files {
		if filepath.Dir(p) == dir && strings.HasSuffix(p, ext) {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (fs *testFS) ValidateIdentifier(id string) error {
	return fsops.NewRealFS().ValidateIdentifier(id)
}

func (fs *testFS) write(path, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = []byte(content)
}

func (fs *testFS) read(t *testing.T, path string) string {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	content, ok := fs.files[path]
	if !ok {
		t.Fatalf("expected %s to exist", path)
	}
	return string(content)
}

const (
	snapshotPath = "/app/widgets.yaml"
	themePath    = "/app/export.json"
	journalDir   = "/state/journal"
)

// testEnv wires an engine to an in-memory filesystem.
type testEnv struct {
	fs      *testFS
	engine  *engine.Engine
	journal *persist.Journal
	store   *state.FileSnapshotStore
}

func newTestEnv(t *testing.T, snapshot, exported string) *testEnv {
	t.Helper()

	fs := newTestFS()
	fs.write(snapshotPath, snapshot)
	fs.write(themePath, exported)

	store := state.NewFileSnapshotStore(fs, hash.NewBlake3Hasher(), "")
	journal := persist.NewJournal(fs, journalDir)
	clk := clock.NewFakeClock(time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)).WithStep(time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		fs:      fs,
		store:   store,
		journal: journal,
		engine:  engine.New(store, journal, planner.NewPlanner(nil, nil, planner.DefaultOptions()), clk, logger),
	}
}

func modsOf(t *testing.T, cmds []planner.UpdateCommand, id string) map[string]any {
	t.Helper()
	for _, cmd := range cmds {
		if cmd.InstanceID == id {
			return cmd.Modifications.Map()
		}
	}
	t.Fatalf("no command for %s in %s", id, describe(cmds))
	return nil
}

func describe(cmds []planner.UpdateCommand) string {
	ids := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		ids = append(ids, fmt.Sprintf("%s(%d)", cmd.InstanceID, cmd.Modifications.Len()))
	}
	return strings.Join(ids, ", ")
}
