package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/tyazhprofil/site/internal/service"
)

// maxUploadBody bounds the whole multipart request: the file plus form
// overhead.
const maxUploadBody = service.MaxUploadSize + 1<<20

// handleUpload accepts a multipart "file" field and an optional "kind"
// ("logo" admits SVG). It responds with {url} or {error}.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, service.ErrTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	url, err := s.media.Upload(r.Context(), r.FormValue("kind"), header.Size, file)
	if err != nil {
		s.writeServiceError(w, err, "upload file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
