package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/readweb"
)

// Ensure FixtureStore implements readweb.FixtureStore at compile time.
var _ readweb.FixtureStore = (*FixtureStore)(nil)

// FixtureStore keeps captured pages as JSON {url, html} files in a directory.
type FixtureStore struct {
	dir string
}

// NewFixtureStore creates a FixtureStore rooted at dir.
func NewFixtureStore(dir string) *FixtureStore {
	return &FixtureStore{dir: dir}
}

// Save writes the fixture and returns the path of the written file.
func (s *FixtureStore) Save(ctx context.Context, fixture *readweb.Fixture) (string, error) {
	if err := fixture.Validate(); err != nil {
		return "", err
	}
	name, err := FixtureName(fixture.URL)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a fixture by file name, with or without the .json extension,
// or by a path to an existing file.
func (s *FixtureStore) Load(ctx context.Context, name string) (*readweb.Fixture, error) {
	path := name
	if _, err := os.Stat(path); err != nil {
		if !strings.HasSuffix(name, ".json") {
			name += ".json"
		}
		path = filepath.Join(s.dir, filepath.Base(name))
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, readweb.Errorf(readweb.ENOTFOUND, "fixture %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	var fixture readweb.Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "fixture %s: %v", path, err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// List returns the names of the stored fixtures in lexical order.
func (s *FixtureStore) List(ctx context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	return names, nil
}
