package store

import (
	"context"
	"database/sql"

	"github.com/tyazhprofil/site/internal/domain"
)

type DocumentStore struct {
	singleton singletonStore
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{singleton: singletonStore{db: db, name: "documents"}}
}

// Get returns the stored documents and their version, or nil and 0 when
// none have been saved.
func (s *DocumentStore) Get(ctx context.Context) (*domain.Documents, int64, error) {
	docs := &domain.Documents{}
	version, err := s.singleton.get(ctx, docs)
	if err != nil || version == 0 {
		return nil, 0, err
	}
	return docs, version, nil
}

func (s *DocumentStore) Put(ctx context.Context, docs *domain.Documents) (int64, error) {
	return s.singleton.put(ctx, docs)
}

func (s *DocumentStore) CompareAndSwap(ctx context.Context, docs *domain.Documents, expected int64) (int64, error) {
	return s.singleton.compareAndSwap(ctx, docs, expected)
}
