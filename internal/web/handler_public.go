package web

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/tyazhprofil/site/internal/domain"
	"github.com/tyazhprofil/site/internal/mediastore"
)

type homePage struct {
	Settings  *domain.SiteSettings
	Services  []*domain.ServiceItem
	Portfolio []*domain.PortfolioItem
	FAQ       []*domain.FAQItem
}

// handleHome renders the public landing page. Read failures degrade to
// defaults or empty sections; the page itself never fails.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := s.site.SettingsOrDefault(ctx)
	page := homePage{Settings: settings}

	if settings.BlockEnabled(domain.BlockServices) {
		page.Services = s.content.ServicesForDisplay(ctx)
	}
	if settings.BlockEnabled(domain.BlockPortfolio) {
		items, err := s.content.ListPortfolio(ctx)
		if err != nil {
			s.logger.Error("failed to load portfolio for home page", "error", err)
		}
		page.Portfolio = items
	}
	if settings.BlockEnabled(domain.BlockFAQ) {
		items, err := s.content.ListFAQ(ctx)
		if err != nil {
			s.logger.Error("failed to load faq for home page", "error", err)
		}
		page.FAQ = items
	}

	if err := s.renderPage(w, page, "base.html", "home.html"); err != nil {
		s.logger.Error("render page failed", "page", "home", "error", err)
	}
}

type documentPage struct {
	Settings *domain.SiteSettings
	Title    string
	Document domain.DocumentTree
}

func (s *Server) handleDocumentPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		doc, err := s.site.Document(ctx, name)
		if err != nil {
			s.logger.Error("failed to load document", "document", name, "error", err)
		}

		page := documentPage{Settings: s.site.SettingsOrDefault(ctx), Title: title, Document: doc}
		if err := s.renderPage(w, page, "base.html", "document.html"); err != nil {
			s.logger.Error("render page failed", "page", name, "error", err)
		}
	}
}

func (s *Server) handleAdminConsole(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Categories": domain.PortfolioCategories,
		"Blocks":     domain.BlockNames,
	}
	if err := s.renderPage(w, data, "base.html", "admin.html"); err != nil {
		s.logger.Error("render page failed", "page", "admin", "error", err)
	}
}

// handlePublicDocuments serves one document for ?type=privacy|offer and
// both otherwise.
func (s *Server) handlePublicDocuments(w http.ResponseWriter, r *http.Request) {
	docs, _, err := s.site.Documents(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "read documents")
		return
	}
	if tree, ok := docs.Tree(r.URL.Query().Get("type")); ok {
		writeJSON(w, http.StatusOK, tree)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if ok, wait := s.contactLimiter.allow(clientAddress(r, s.trustProxy)); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
		return
	}

	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.leads.Submit(r.Context(), req.Name, req.Phone, req.Message); err != nil {
		s.writeServiceError(w, err, "send message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	if s.mediaStore == nil {
		http.NotFound(w, r)
		return
	}

	reader, mimeType, err := s.mediaStore.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		if !errors.Is(err, mediastore.ErrNotFound) {
			s.logger.Warn("media lookup failed", "key", r.PathValue("key"), "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "media reader", s.logger)

	h := w.Header()
	h.Set("Content-Type", mimeType)
	// Keys are random and never reused, so objects can be cached for good.
	h.Set("Cache-Control", "public, max-age=31536000, immutable")
	if mimeType == "image/svg+xml" {
		h.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
	}
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write media failed", "key", r.PathValue("key"), "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
