package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tyazhprofil/site/internal/domain"
	"github.com/tyazhprofil/site/internal/service"
)

const (
	defaultLeadLimit = 100
	maxLeadLimit     = 500
)

type authResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Message: "Некорректный запрос"})
		return
	}

	token, expires, err := s.auth.Authenticate(r.Context(), req.Password)
	if errors.Is(err, service.ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, authResponse{Message: "Неверный пароль"})
		return
	}
	if err != nil {
		s.logger.Error("authentication failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, authResponse{Message: "Ошибка аутентификации"})
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Success: true, Token: token, ExpiresAt: expires.Unix()})
}

func (s *Server) handlePasswordExists(w http.ResponseWriter, r *http.Request) {
	exists, err := s.auth.PasswordExists(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "check password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		Password        string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), req.CurrentPassword, req.Password); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		s.writeServiceError(w, err, "change password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, version, err := s.site.Settings(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "read settings")
		return
	}
	w.Header().Set("ETag", etag(version))
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatchVersion(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var settings domain.SiteSettings
	if err := decodeJSON(w, r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	version, err := s.site.SaveSettings(r.Context(), &settings, expected)
	if err != nil {
		s.writeServiceError(w, err, "update settings")
		return
	}
	w.Header().Set("ETag", etag(version))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "version": version})
}

func (s *Server) handleGetDocuments(w http.ResponseWriter, r *http.Request) {
	docs, version, err := s.site.Documents(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "read documents")
		return
	}
	w.Header().Set("ETag", etag(version))
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handlePutDocuments(w http.ResponseWriter, r *http.Request) {
	expected, err := ifMatchVersion(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var docs domain.Documents
	if err := decodeJSON(w, r, &docs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	version, err := s.site.SaveDocuments(r.Context(), &docs, expected)
	if err != nil {
		s.writeServiceError(w, err, "update documents")
		return
	}
	w.Header().Set("ETag", etag(version))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "version": version})
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeadLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxLeadLimit)
	}

	leads, err := s.leads.List(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err, "read leads")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": leads})
}
