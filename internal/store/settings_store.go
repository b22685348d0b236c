package store

import (
	"context"
	"database/sql"

	"github.com/tyazhprofil/site/internal/domain"
)

type SettingsStore struct {
	singleton singletonStore
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{singleton: singletonStore{db: db, name: "settings"}}
}

// Get returns the stored settings and their version, or nil and 0 when
// none have been saved.
func (s *SettingsStore) Get(ctx context.Context) (*domain.SiteSettings, int64, error) {
	settings := &domain.SiteSettings{}
	version, err := s.singleton.get(ctx, settings)
	if err != nil || version == 0 {
		return nil, 0, err
	}
	return settings, version, nil
}

func (s *SettingsStore) Put(ctx context.Context, settings *domain.SiteSettings) (int64, error) {
	return s.singleton.put(ctx, settings)
}

func (s *SettingsStore) CompareAndSwap(ctx context.Context, settings *domain.SiteSettings, expected int64) (int64, error) {
	return s.singleton.compareAndSwap(ctx, settings, expected)
}
