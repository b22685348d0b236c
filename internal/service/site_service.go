package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tyazhprofil/site/internal/domain"
)

// settingsRepository is the subset of store.SettingsStore that SiteService requires.
type settingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, int64, error)
	Put(ctx context.Context, settings *domain.SiteSettings) (int64, error)
	CompareAndSwap(ctx context.Context, settings *domain.SiteSettings, expected int64) (int64, error)
}

// documentRepository is the subset of store.DocumentStore that SiteService requires.
type documentRepository interface {
	Get(ctx context.Context) (*domain.Documents, int64, error)
	Put(ctx context.Context, docs *domain.Documents) (int64, error)
	CompareAndSwap(ctx context.Context, docs *domain.Documents, expected int64) (int64, error)
}

// SiteService reads and replaces the settings and documents singletons.
// Every read returns the stored version; version 0 means the value is the
// built-in default and nothing has been saved yet.
type SiteService struct {
	settings  settingsRepository
	documents documentRepository
	media     mediaReleaser
	logger    *slog.Logger
}

// NewSiteService builds a SiteService. media may be nil, in which case a
// replaced logo stays in storage.
func NewSiteService(settings settingsRepository, documents documentRepository, media mediaReleaser, logger *slog.Logger) *SiteService {
	return &SiteService{settings: settings, documents: documents, media: media, logger: logger}
}

func (s *SiteService) Settings(ctx context.Context) (*domain.SiteSettings, int64, error) {
	settings, version, err := s.settings.Get(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		return domain.DefaultSettings(), 0, nil
	}
	return settings, version, nil
}

// SettingsOrDefault is for public rendering, which never fails.
func (s *SiteService) SettingsOrDefault(ctx context.Context) *domain.SiteSettings {
	settings, _, err := s.Settings(ctx)
	if err != nil {
		s.logger.Error("failed to load settings, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	return settings
}

// SaveSettings replaces the stored settings as a whole. When expected is
// non-nil the write only succeeds if the stored version still equals it.
func (s *SiteService) SaveSettings(ctx context.Context, settings *domain.SiteSettings, expected *int64) (int64, error) {
	if settings == nil {
		return 0, invalid("settings", "settings are required")
	}

	previous, _, err := s.settings.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}

	var version int64
	if expected != nil {
		version, err = s.settings.CompareAndSwap(ctx, settings, *expected)
	} else {
		version, err = s.settings.Put(ctx, settings)
	}
	if err != nil {
		return 0, translateStoreError(err)
	}
	s.logger.Info("settings saved", "version", version)

	if previous != nil && previous.Logo.URL != "" && previous.Logo.URL != settings.Logo.URL && s.media != nil {
		if err := s.media.Release(ctx, UploadKindLogo, previous.Logo.URL); err != nil {
			s.logger.Error("failed to release replaced logo", "url", previous.Logo.URL, "error", err)
		}
	}
	return version, nil
}

func (s *SiteService) Documents(ctx context.Context) (*domain.Documents, int64, error) {
	docs, version, err := s.documents.Get(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get documents: %w", err)
	}
	if docs == nil {
		return domain.DefaultDocuments(), 0, nil
	}
	normalizeDocuments(docs)
	return docs, version, nil
}

// Document returns one named document tree.
func (s *SiteService) Document(ctx context.Context, name string) (domain.DocumentTree, error) {
	docs, _, err := s.Documents(ctx)
	if err != nil {
		return domain.DocumentTree{}, err
	}
	tree, ok := docs.Tree(name)
	if !ok {
		return domain.DocumentTree{}, ErrNotFound
	}
	return tree, nil
}

func (s *SiteService) SaveDocuments(ctx context.Context, docs *domain.Documents, expected *int64) (int64, error) {
	if docs == nil {
		return 0, invalid("documents", "documents are required")
	}
	normalizeDocuments(docs)

	var version int64
	var err error
	if expected != nil {
		version, err = s.documents.CompareAndSwap(ctx, docs, *expected)
	} else {
		version, err = s.documents.Put(ctx, docs)
	}
	if err != nil {
		return 0, translateStoreError(err)
	}
	s.logger.Info("documents saved", "version", version,
		"privacy_sections", len(docs.Privacy.Sections), "offer_sections", len(docs.Offer.Sections))
	return version, nil
}

// normalizeDocuments replaces nil slices so clients always see JSON arrays.
func normalizeDocuments(docs *domain.Documents) {
	for _, tree := range []*domain.DocumentTree{&docs.Privacy, &docs.Offer} {
		if tree.Sections == nil {
			tree.Sections = []domain.DocumentSection{}
		}
		for i := range tree.Sections {
			if tree.Sections[i].Content == nil {
				tree.Sections[i].Content = []string{}
			}
		}
	}
}
