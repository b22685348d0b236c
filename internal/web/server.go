package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tyazhprofil/site/internal/domain"
	"github.com/tyazhprofil/site/internal/mediastore"
	"github.com/tyazhprofil/site/internal/service"
)

// pinger reports whether the backing database is reachable.
type pinger interface {
	PingContext(ctx context.Context) error
}

// Deps bundles what the HTTP layer serves.
type Deps struct {
	Content *service.ContentService
	Site    *service.SiteService
	Auth    *service.AuthService
	Media   *service.MediaService
	Leads   *service.LeadService
	// MediaStore backs GET /media/{key}. When nil the route answers 404.
	MediaStore mediastore.MediaStore
	DB         pinger
	// ContactPerMinute caps contact form submissions per client address.
	ContactPerMinute int
	// TrustProxyHeaders takes the client address from X-Real-IP or
	// X-Forwarded-For instead of the connection.
	TrustProxyHeaders bool
}

type Server struct {
	content        *service.ContentService
	site           *service.SiteService
	auth           *service.AuthService
	media          *service.MediaService
	leads          *service.LeadService
	mediaStore     mediastore.MediaStore
	db             pinger
	contactLimiter *clientLimiter
	trustProxy     bool
	templates      embed.FS
	mux            *http.ServeMux
	tmplFuncs      template.FuncMap
	logger         *slog.Logger
}

func NewServer(deps Deps, tmpl embed.FS, logger *slog.Logger) *Server {
	perMinute := deps.ContactPerMinute
	if perMinute <= 0 {
		perMinute = 5
	}
	s := &Server{
		content:        deps.Content,
		site:           deps.Site,
		auth:           deps.Auth,
		media:          deps.Media,
		leads:          deps.Leads,
		mediaStore:     deps.MediaStore,
		db:             deps.DB,
		contactLimiter: newClientLimiter(perMinute),
		trustProxy:     deps.TrustProxyHeaders,
		templates:      tmpl,
		mux:            http.NewServeMux(),
		logger:         logger,
		tmplFuncs: template.FuncMap{
			"inc":         func(i int) int { return i + 1 },
			"serviceIcon": serviceIcon,
			"telHref":     telHref,
			"year":        func() int { return time.Now().Year() },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Public site.
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /privacy", s.handleDocumentPage(domain.DocumentPrivacy, "Политика конфиденциальности"))
	s.mux.HandleFunc("GET /offer", s.handleDocumentPage(domain.DocumentOffer, "Публичная оферта"))
	s.mux.HandleFunc("GET /admin", s.handleAdminConsole)
	s.mux.HandleFunc("GET /media/{key...}", s.handleMedia)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/documents", s.handlePublicDocuments)
	s.mux.HandleFunc("POST /api/contact", s.handleContact)

	// Admin API. Reads stay public because the public site consumes them.
	s.mux.HandleFunc("POST /api/admin/auth", s.handleAuth)
	s.mux.HandleFunc("GET /api/admin/password", s.handlePasswordExists)
	s.mux.Handle("POST /api/admin/password", s.requireAdmin(s.handleChangePassword))

	s.mux.HandleFunc("GET /api/admin/settings", s.handleGetSettings)
	s.mux.Handle("PUT /api/admin/settings", s.requireAdmin(s.handlePutSettings))
	s.mux.HandleFunc("GET /api/admin/documents", s.handleGetDocuments)
	s.mux.Handle("PUT /api/admin/documents", s.requireAdmin(s.handlePutDocuments))

	registerCollection(s, "portfolio", collection[domain.PortfolioItem, service.PortfolioPatch]{
		list:   s.content.ListPortfolio,
		get:    s.content.GetPortfolioItem,
		create: s.content.CreatePortfolioItem,
		update: s.content.UpdatePortfolioItem,
		delete: s.content.DeletePortfolioItem,
	})
	registerCollection(s, "faq", collection[domain.FAQItem, service.FAQPatch]{
		list:   s.content.ListFAQ,
		get:    s.content.GetFAQItem,
		create: s.content.CreateFAQItem,
		update: s.content.UpdateFAQItem,
		delete: s.content.DeleteFAQItem,
	})
	registerCollection(s, "services", collection[domain.ServiceItem, service.ServicePatch]{
		list:   s.content.ListServices,
		get:    s.content.GetServiceItem,
		create: s.content.CreateServiceItem,
		update: s.content.UpdateServiceItem,
		delete: s.content.DeleteServiceItem,
	})

	s.mux.Handle("GET /api/admin/leads", s.requireAdmin(s.handleListLeads))
	s.mux.Handle("POST /api/upload", s.requireAdmin(s.handleUpload))
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline'; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
				"font-src https://fonts.gstatic.com; "+
				"img-src 'self' data: https:; "+
				"connect-src 'self'; "+
				"frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// serviceIcon returns the glyph shown for a service icon tag.
func serviceIcon(tag string) string {
	switch tag {
	case domain.IconBuilding:
		return "🏗️"
	case domain.IconWarehouse:
		return "📦"
	case domain.IconWrench:
		return "🔧"
	case domain.IconFactory:
		return "🏭"
	default:
		return "🛠️"
	}
}

// telHref turns a display phone number into a tel: link target. Only digits
// and a leading plus survive, so the result is safe as a URL.
func telHref(phone string) template.URL {
	var b strings.Builder
	b.WriteString("tel:")
	for i, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return template.URL(b.String())
}
