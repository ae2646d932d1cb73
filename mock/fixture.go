package mock

import (
	"context"

	"github.com/fwojciec/readweb"
)

var _ readweb.FixtureStore = (*FixtureStore)(nil)

// FixtureStore is a mock implementation of readweb.FixtureStore.
type FixtureStore struct {
	SaveFn func(ctx context.Context, fixture *readweb.Fixture) (string, error)
	LoadFn func(ctx context.Context, name string) (*readweb.Fixture, error)
	ListFn func(ctx context.Context) ([]string, error)
}

func (s *FixtureStore) Save(ctx context.Context, fixture *readweb.Fixture) (string, error) {
	return s.SaveFn(ctx, fixture)
}

func (s *FixtureStore) Load(ctx context.Context, name string) (*readweb.Fixture, error) {
	return s.LoadFn(ctx, name)
}

func (s *FixtureStore) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}
