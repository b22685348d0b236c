package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tyazhprofil/site/internal/config"
	"github.com/tyazhprofil/site/internal/db"
	"github.com/tyazhprofil/site/internal/logging"
	"github.com/tyazhprofil/site/internal/mediastore"
	"github.com/tyazhprofil/site/internal/mediastore/local"
	"github.com/tyazhprofil/site/internal/mediastore/s3"
	"github.com/tyazhprofil/site/internal/notify/telegram"
	"github.com/tyazhprofil/site/internal/service"
	"github.com/tyazhprofil/site/internal/store"
	"github.com/tyazhprofil/site/internal/web"
	"github.com/tyazhprofil/site/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogMaxSizeMB)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	media, err := newMediaStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize media store", "backend", cfg.MediaBackend, "error", err)
		return
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("SESSION_SECRET is not set; admin sessions will not survive a restart")
	}

	mediaService := service.NewMediaService(media, logger)
	site := service.NewSiteService(store.NewSettingsStore(database), store.NewDocumentStore(database), mediaService, logger)
	content := service.NewContentService(store.NewPortfolioStore(database), store.NewFAQStore(database), store.NewServiceStore(database), mediaService, logger)
	auth := service.NewAuthService(store.NewAdminStore(database), secret, cfg.SessionTTL, logger)
	if err := auth.Bootstrap(ctx, cfg.AdminPassword); err != nil {
		logger.Error("failed to bootstrap admin credential", "error", err)
		return
	}
	leads := service.NewLeadService(store.NewLeadStore(database), site, newNotifier(cfg, logger), logger)

	server := web.NewServer(web.Deps{
		Content:           content,
		Site:              site,
		Auth:              auth,
		Media:             mediaService,
		Leads:             leads,
		MediaStore:        media,
		DB:                database,
		ContactPerMinute:  cfg.ContactPerMin,
		TrustProxyHeaders: cfg.TrustProxy,
	}, templates.FS, logger)

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newMediaStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (mediastore.MediaStore, error) {
	switch cfg.MediaBackend {
	case "s3":
		logger.Info("using S3 media backend", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
		return s3.New(ctx, s3.Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		}, logger)
	default:
		logger.Info("using local media backend", "path", cfg.MediaPath)
		return local.New(cfg.MediaPath, cfg.PublicBaseURL+"/media")
	}
}

// newNotifier returns nil when Telegram is not configured; leads are then
// only stored.
func newNotifier(cfg *config.Config, logger *slog.Logger) service.LeadNotifier {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set; leads will not be relayed")
		return nil
	}
	return telegram.New(cfg.TelegramToken, cfg.TelegramChatID)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("failed to generate session secret: %v", err)
	}
	return hex.EncodeToString(b)
}
