package readweb

import "context"

// Fixture is a captured page used to develop and test presets offline.
type Fixture struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// Validate returns an error if the fixture contains invalid fields.
func (f *Fixture) Validate() error {
	if f.HTML == "" {
		return Errorf(EINVALID, "fixture html required")
	}
	return nil
}

// FixtureStore persists fixtures by name.
type FixtureStore interface {
	// Save writes the fixture and returns where it was stored.
	Save(ctx context.Context, fixture *Fixture) (string, error)

	// Load returns a fixture by name.
	// Returns ENOTFOUND if the fixture does not exist.
	Load(ctx context.Context, name string) (*Fixture, error)

	// List returns the names of stored fixtures.
	List(ctx context.Context) ([]string, error)
}
