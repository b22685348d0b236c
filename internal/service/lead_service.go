package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tyazhprofil/site/internal/domain"
)

const (
	maxLeadNameLength    = 200
	maxLeadPhoneLength   = 50
	maxLeadMessageLength = 4000
	notifyTimeout        = 10 * time.Second
)

// leadRepository is the subset of store.LeadStore that LeadService requires.
type leadRepository interface {
	Create(ctx context.Context, name, phone, message string) (*domain.Lead, error)
	List(ctx context.Context, limit int) ([]*domain.Lead, error)
}

// formSettings is the subset of SiteService that LeadService requires.
type formSettings interface {
	SettingsOrDefault(ctx context.Context) *domain.SiteSettings
}

// LeadNotifier delivers a new lead to the site owner.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *domain.Lead) error
}

// LeadService accepts contact form submissions.
type LeadService struct {
	leads    leadRepository
	settings formSettings
	notifier LeadNotifier
	logger   *slog.Logger
}

// NewLeadService builds a LeadService. notifier may be nil, in which case
// leads are only stored.
func NewLeadService(leads leadRepository, settings formSettings, notifier LeadNotifier, logger *slog.Logger) *LeadService {
	return &LeadService{leads: leads, settings: settings, notifier: notifier, logger: logger}
}

// Submit stores a lead and notifies the owner. A failed notification is
// logged and does not fail the submission.
func (s *LeadService) Submit(ctx context.Context, name, phone, message string) (*domain.Lead, error) {
	if !s.settings.SettingsOrDefault(ctx).Form.Enabled {
		return nil, ErrFormDisabled
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	message = strings.TrimSpace(message)
	switch {
	case name == "":
		return nil, invalid("name", "name is required")
	case phone == "":
		return nil, invalid("phone", "phone is required")
	case utf8.RuneCountInString(name) > maxLeadNameLength:
		return nil, invalid("name", "name is too long")
	case utf8.RuneCountInString(phone) > maxLeadPhoneLength:
		return nil, invalid("phone", "phone is too long")
	case utf8.RuneCountInString(message) > maxLeadMessageLength:
		return nil, invalid("message", "message is too long")
	}

	lead, err := s.leads.Create(ctx, name, phone, message)
	if err != nil {
		return nil, fmt.Errorf("failed to store lead: %w", err)
	}
	s.logger.Info("lead received", "id", lead.ID)

	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyLead(nctx, lead); err != nil {
			s.logger.Error("failed to notify about lead", "id", lead.ID, "error", err)
		}
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, limit int) ([]*domain.Lead, error) {
	leads, err := s.leads.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}
