// Package config provides centralized default values for the site content server
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		// godotenv.Load never overrides variables already present in the environment.
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded configuration overrides from .env file")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvSecret(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	log.Printf("Config override: %s=%v (default: %v)", key, out, defaultValue)
	return out
}

var (
	// Server Configuration
	Port                    string
	ServerReadTimeout       time.Duration
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	ServerMaxHeaderBytes    int
	AllowedOrigins          []string

	// Database
	DatabaseType             string // "sqlite3" or "turso"
	SQLitePath               string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	SlowQueryThreshold       time.Duration

	// Auth
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	// Site
	SiteRoot      string
	BackupDir     string
	SitePages     []string
	AdminPages    []string
	BannerElement string

	// Media
	AssetPrefixes        []string
	RemoteMediaOrigins   []string
	DefaultBannerImage   string
	SupplementaryVideos  []string
	MaxUploadBytes       int
	ThumbnailWidth       int
	ScanConcurrency      int
	ScanFetchTimeout     time.Duration
	ContentCacheTTL      time.Duration
	LocalStoreQuotaBytes int
	LocalStoreNamespace  string

	// Contact relay
	ResendAPIKey     string
	ContactEmailTo   string
	ContactEmailFrom string
	ContactEmailName string

	// Logging
	LogLevel      string
	LogDirectory  string
	LogToFile     bool
	LogJSONFormat bool
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerReadHeaderTimeout = getEnvDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	ServerMaxHeaderBytes = getEnvInt("SERVER_MAX_HEADER_BYTES", 1<<20)
	AllowedOrigins = getEnvList("ALLOWED_ORIGINS", []string{
		"http://localhost:3000",
		"http://localhost:5500",
		"http://127.0.0.1:5500",
	})

	// Database
	DatabaseType = getEnvString("DATABASE_TYPE", "sqlite3")
	SQLitePath = getEnvString("SQLITE_PATH", "data/site.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvSecret("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 500*time.Millisecond)

	// Auth
	JWTSecret = getEnvSecret("JWT_SECRET", "")
	TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)
	AdminEmail = getEnvString("ADMIN_EMAIL", "admin@example.com")
	AdminPassword = getEnvSecret("ADMIN_PASSWORD", "")

	// Site
	SiteRoot = getEnvString("SITE_ROOT", "site")
	BackupDir = getEnvString("BACKUP_DIR", "data/backups")
	SitePages = getEnvList("SITE_PAGES", []string{"index.html", "about.html", "games.html", "contact.html"})
	AdminPages = getEnvList("ADMIN_PAGES", []string{"admin.html", "dashboard.html"})
	BannerElement = getEnvString("BANNER_ELEMENT", ".banner-section")

	// Media
	AssetPrefixes = getEnvList("ASSET_PREFIXES", []string{"assets/", "images/", "img/", "videos/", "video/"})
	RemoteMediaOrigins = getEnvList("REMOTE_MEDIA_ORIGINS", []string{
		"https://www.youtube.com/",
		"https://player.vimeo.com/",
		"https://videos.pexels.com/",
		"https://cdn.pixabay.com/",
	})
	DefaultBannerImage = getEnvString("DEFAULT_BANNER_IMAGE", "assets/picture/banner-bg.jpg")
	SupplementaryVideos = getEnvList("SUPPLEMENTARY_VIDEOS", nil)
	MaxUploadBytes = getEnvInt("MAX_UPLOAD_BYTES", 8*1024*1024)
	ThumbnailWidth = getEnvInt("THUMBNAIL_WIDTH", 300)
	ScanConcurrency = getEnvInt("SCAN_CONCURRENCY", 4)
	ScanFetchTimeout = getEnvDuration("SCAN_FETCH_TIMEOUT", 10*time.Second)
	ContentCacheTTL = getEnvDuration("CONTENT_CACHE_TTL", 10*time.Minute)
	LocalStoreQuotaBytes = getEnvInt("LOCAL_STORE_QUOTA_BYTES", 5*1024*1024)
	LocalStoreNamespace = getEnvString("LOCAL_STORE_NAMESPACE", "tsb_")

	// Contact relay
	ResendAPIKey = getEnvSecret("RESEND_API_KEY", "")
	ContactEmailTo = getEnvString("CONTACT_EMAIL_TO", "")
	ContactEmailFrom = getEnvString("CONTACT_EMAIL_FROM", "noreply@example.com")
	ContactEmailName = getEnvString("CONTACT_EMAIL_FROM_NAME", "Site Contact Form")

	// Logging
	LogLevel = getEnvString("LOG_LEVEL", "info")
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	LogJSONFormat = getEnvBool("LOG_JSON", true)
}
