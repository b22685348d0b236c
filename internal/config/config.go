package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr     string
	DBPath         string
	LogLevel       string
	LogFile        string
	LogMaxSizeMB   int
	AdminPassword  string
	SessionSecret  string
	SessionTTL     time.Duration
	MediaBackend   string
	MediaPath      string
	PublicBaseURL  string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3Prefix       string
	TelegramToken  string
	TelegramChatID string
	ContactPerMin  int
	TrustProxy     bool
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "/data/site.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogMaxSizeMB:   getEnvInt("LOG_MAX_SIZE_MB", 50),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     getEnvDuration("SESSION_TTL", 12*time.Hour),
		MediaBackend:   getEnv("MEDIA_BACKEND", "local"),
		MediaPath:      getEnv("MEDIA_LOCAL_PATH", "/data/media"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3Prefix:       getEnv("S3_PREFIX", "uploads"),
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),
		ContactPerMin:  getEnvInt("CONTACT_RATE_PER_MINUTE", 10),
		TrustProxy:     os.Getenv("TRUST_PROXY_HEADERS") == "1",
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// getEnvInt returns defaultVal when the variable is unset, malformed or negative.
func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
