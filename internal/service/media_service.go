package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tyazhprofil/site/internal/mediastore"
)

// MaxUploadSize is the largest accepted upload, in bytes.
const MaxUploadSize = 5 << 20

const UploadKindLogo = "logo"

// Key prefixes for stored uploads, one per kind.
const (
	uploadPrefix = "uploads"
	logoPrefix   = "logo"
)

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// MediaService validates uploads and forwards accepted ones to the media
// backend. Nothing is stored for a rejected upload.
type MediaService struct {
	media  mediastore.MediaStore
	logger *slog.Logger
}

func NewMediaService(media mediastore.MediaStore, logger *slog.Logger) *MediaService {
	return &MediaService{media: media, logger: logger}
}

// Upload stores the file and returns its public URL. size is the length
// declared by the client; the content itself is also bounded while reading.
// The type is sniffed from the content, never taken from the client. Logos
// may additionally be SVG.
func (s *MediaService) Upload(ctx context.Context, kind string, size int64, r io.Reader) (string, error) {
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", invalid("file", "file is empty")
	}

	mimeType, ok := allowedMIME(data, kind == UploadKindLogo)
	if !ok {
		s.logger.Info("upload rejected", "kind", kind, "detected", mimetype.Detect(data).String())
		return "", ErrUnsupportedType
	}

	key, err := s.media.Save(ctx, prefixFor(kind), mimeType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	s.logger.Info("upload stored", "key", key, "mime_type", mimeType, "bytes", len(data))
	return s.media.URL(key), nil
}

// Release deletes the stored object behind a URL that Upload returned for
// the same kind. Any other URL is left alone, as are objects that are
// already gone.
func (s *MediaService) Release(ctx context.Context, kind, url string) error {
	key, ok := s.keyFor(kind, url)
	if !ok {
		return nil
	}
	if err := s.media.Delete(ctx, key); err != nil && !errors.Is(err, mediastore.ErrNotFound) {
		return fmt.Errorf("failed to delete media %q: %w", key, err)
	}
	s.logger.Info("media released", "key", key)
	return nil
}

func (s *MediaService) keyFor(kind, url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.media.URL(""))
	if !ok || strings.Contains(key, "..") || !strings.HasPrefix(key, prefixFor(kind)+"/") {
		return "", false
	}
	return key, true
}

func prefixFor(kind string) string {
	if kind == UploadKindLogo {
		return logoPrefix
	}
	return uploadPrefix
}

func allowedMIME(data []byte, allowSVG bool) (string, bool) {
	detected := mimetype.Detect(data)
	for _, t := range imageTypes {
		if detected.Is(t) {
			return t, true
		}
	}
	if allowSVG && detected.Is("image/svg+xml") {
		return "image/svg+xml", true
	}
	return "", false
}
