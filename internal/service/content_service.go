package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tyazhprofil/site/internal/domain"
)

// portfolioRepository is the subset of store.PortfolioStore that ContentService requires.
type portfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error)
	List(ctx context.Context) ([]*domain.PortfolioItem, error)
	Update(ctx context.Context, item *domain.PortfolioItem) error
	Delete(ctx context.Context, id string) error
}

// faqRepository is the subset of store.FAQStore that ContentService requires.
type faqRepository interface {
	Create(ctx context.Context, item *domain.FAQItem) (*domain.FAQItem, error)
	GetByID(ctx context.Context, id string) (*domain.FAQItem, error)
	List(ctx context.Context) ([]*domain.FAQItem, error)
	Update(ctx context.Context, item *domain.FAQItem) error
	Delete(ctx context.Context, id string) error
}

// serviceRepository is the subset of store.ServiceStore that ContentService requires.
type serviceRepository interface {
	Create(ctx context.Context, item *domain.ServiceItem) (*domain.ServiceItem, error)
	GetByID(ctx context.Context, id string) (*domain.ServiceItem, error)
	List(ctx context.Context) ([]*domain.ServiceItem, error)
	Update(ctx context.Context, item *domain.ServiceItem) error
	Delete(ctx context.Context, id string) error
}

// PortfolioPatch carries the fields of an update request. Nil fields keep
// their stored value.
type PortfolioPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
	Client      *string `json:"client"`
	Duration    *string `json:"duration"`
	Workers     *int    `json:"workers"`
}

func (p *PortfolioPatch) apply(item *domain.PortfolioItem) {
	setString(&item.Title, p.Title)
	setString(&item.Description, p.Description)
	setString(&item.Image, p.Image)
	setString(&item.Category, p.Category)
	setString(&item.Client, p.Client)
	setString(&item.Duration, p.Duration)
	if p.Workers != nil {
		item.Workers = *p.Workers
	}
}

type FAQPatch struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	OrderIndex *int    `json:"order_index"`
}

func (p *FAQPatch) apply(item *domain.FAQItem) {
	setString(&item.Question, p.Question)
	setString(&item.Answer, p.Answer)
	if p.OrderIndex != nil {
		item.OrderIndex = *p.OrderIndex
	}
}

type ServicePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Features    *[]string `json:"features"`
	OrderIndex  *int      `json:"order_index"`
}

func (p *ServicePatch) apply(item *domain.ServiceItem) {
	setString(&item.Title, p.Title)
	setString(&item.Description, p.Description)
	setString(&item.Icon, p.Icon)
	if p.Features != nil {
		item.Features = *p.Features
	}
	if p.OrderIndex != nil {
		item.OrderIndex = *p.OrderIndex
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// mediaReleaser deletes an uploaded object of the given upload kind by its
// public URL.
type mediaReleaser interface {
	Release(ctx context.Context, kind, url string) error
}

// ContentService manages the portfolio, FAQ and services collections.
// Collections have no concurrency control: the last write wins.
type ContentService struct {
	portfolio portfolioRepository
	faq       faqRepository
	services  serviceRepository
	media     mediaReleaser
	logger    *slog.Logger
}

// NewContentService builds a ContentService. media may be nil, in which case
// replaced portfolio images stay in storage.
func NewContentService(portfolio portfolioRepository, faq faqRepository, services serviceRepository, media mediaReleaser, logger *slog.Logger) *ContentService {
	return &ContentService{
		portfolio: portfolio,
		faq:       faq,
		services:  services,
		media:     media,
		logger:    logger,
	}
}

func newID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validatePortfolio(item *domain.PortfolioItem) error {
	if blank(item.Title) {
		return invalid("title", "title is required")
	}
	if item.Workers < 0 {
		return invalid("workers", "workers must not be negative")
	}
	return nil
}

func validateFAQ(item *domain.FAQItem) error {
	if blank(item.Question) {
		return invalid("question", "question is required")
	}
	if blank(item.Answer) {
		return invalid("answer", "answer is required")
	}
	return nil
}

func validateService(item *domain.ServiceItem) error {
	if blank(item.Title) {
		return invalid("title", "title is required")
	}
	return nil
}

// Portfolio

func (s *ContentService) ListPortfolio(ctx context.Context) ([]*domain.PortfolioItem, error) {
	items, err := s.portfolio.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio: %w", err)
	}
	return items, nil
}

func (s *ContentService) GetPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	item, err := s.portfolio.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *ContentService) CreatePortfolioItem(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	if err := validatePortfolio(item); err != nil {
		return nil, err
	}
	item.ID = newID(item.ID)

	created, err := s.portfolio.Create(ctx, item)
	if err != nil {
		return nil, translateStoreError(err)
	}
	s.logger.Info("portfolio item created", "id", created.ID)
	return created, nil
}

func (s *ContentService) UpdatePortfolioItem(ctx context.Context, id string, patch *PortfolioPatch) (*domain.PortfolioItem, error) {
	item, err := s.GetPortfolioItem(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := item.Image
	patch.apply(item)
	if err := validatePortfolio(item); err != nil {
		return nil, err
	}

	if err := s.portfolio.Update(ctx, item); err != nil {
		return nil, translateStoreError(err)
	}
	s.logger.Info("portfolio item updated", "id", id)
	if oldImage != item.Image {
		s.releaseImage(ctx, oldImage)
	}
	return item, nil
}

// DeletePortfolioItem succeeds whether or not the item exists.
func (s *ContentService) DeletePortfolioItem(ctx context.Context, id string) error {
	item, err := s.portfolio.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get portfolio item: %w", err)
	}
	if err := s.portfolio.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	s.logger.Info("portfolio item deleted", "id", id)
	if item != nil {
		s.releaseImage(ctx, item.Image)
	}
	return nil
}

// releaseImage drops an image once no portfolio item refers to it. The item
// change is already stored, so failures are only logged.
func (s *ContentService) releaseImage(ctx context.Context, image string) {
	if s.media == nil || image == "" {
		return
	}
	items, err := s.portfolio.List(ctx)
	if err != nil {
		s.logger.Error("failed to check image references", "image", image, "error", err)
		return
	}
	for _, item := range items {
		if item.Image == image {
			return
		}
	}
	if err := s.media.Release(ctx, "", image); err != nil {
		s.logger.Error("failed to release image", "image", image, "error", err)
	}
}

// FAQ

func (s *ContentService) ListFAQ(ctx context.Context) ([]*domain.FAQItem, error) {
	items, err := s.faq.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list faq: %w", err)
	}
	return items, nil
}

func (s *ContentService) GetFAQItem(ctx context.Context, id string) (*domain.FAQItem, error) {
	item, err := s.faq.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get faq item: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *ContentService) CreateFAQItem(ctx context.Context, item *domain.FAQItem) (*domain.FAQItem, error) {
	if err := validateFAQ(item); err != nil {
		return nil, err
	}
	item.ID = newID(item.ID)

	created, err := s.faq.Create(ctx, item)
	if err != nil {
		return nil, translateStoreError(err)
	}
	s.logger.Info("faq item created", "id", created.ID)
	return created, nil
}

func (s *ContentService) UpdateFAQItem(ctx context.Context, id string, patch *FAQPatch) (*domain.FAQItem, error) {
	item, err := s.GetFAQItem(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(item)
	if err := validateFAQ(item); err != nil {
		return nil, err
	}

	if err := s.faq.Update(ctx, item); err != nil {
		return nil, translateStoreError(err)
	}
	s.logger.Info("faq item updated", "id", id)
	return item, nil
}

func (s *ContentService) DeleteFAQItem(ctx context.Context, id string) error {
	if err := s.faq.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete faq item: %w", err)
	}
	s.logger.Info("faq item deleted", "id", id)
	return nil
}

// Services

func (s *ContentService) ListServices(ctx context.Context) ([]*domain.ServiceItem, error) {
	items, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return items, nil
}

// ServicesForDisplay returns the stored services, or the built-in set when
// none are stored or the store cannot be read.
func (s *ContentService) ServicesForDisplay(ctx context.Context) []*domain.ServiceItem {
	items, err := s.ListServices(ctx)
	if err != nil {
		s.logger.Error("failed to load services, using fallback", "error", err)
		return domain.FallbackServices()
	}
	if len(items) == 0 {
		return domain.FallbackServices()
	}
	return items
}

func (s *ContentService) GetServiceItem(ctx context.Context, id string) (*domain.ServiceItem, error) {
	item, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *ContentService) CreateServiceItem(ctx context.Context, item *domain.ServiceItem) (*domain.ServiceItem, error) {
	if err := validateService(item); err != nil {
		return nil, err
	}
	item.ID = newID(item.ID)

	created, err := s.services.Create(ctx, item)
	if err != nil {
		return nil, translateStoreError(err)
	}
	s.logger.Info("service created", "id", created.ID)
	return created, nil
}

func (s *ContentService) UpdateServiceItem(ctx context.Context, id string, patch *ServicePatch) (*domain.ServiceItem, error) {
	item, err := s.GetServiceItem(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(item)
	if err := validateService(item); err != nil {
		return nil, err
	}

	if err := s.services.Update(ctx, item); err != nil {
		return nil, translateStoreError(err)
	}
	s.logger.Info("service updated", "id", id)
	return item, nil
}

func (s *ContentService) DeleteServiceItem(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	s.logger.Info("service deleted", "id", id)
	return nil
}
