package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration loaded from the environment.
type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	SpotifyClientID     string
	SpotifyClientSecret string

	YouTubeAPIKey     string
	YouTubeMaxResults int64

	// APIKey enables the shared-secret header gate on data routes when
	// non-empty.
	APIKey string

	// DocsUsername/DocsPassword protect /docs and /openapi.json. The
	// password may be a bcrypt hash or a plain value.
	DocsUsername string
	DocsPassword string

	AllowedOrigins []string

	AudioBitrate     string // e.g. "192k"
	DownloadTimeout  time.Duration
	DownloadWorkers  int
	DownloadMaxBytes int64

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		MongoURI: getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGODB_DB", "portfolio"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "portfoliofm"),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		RedisEnabled:  getEnvBool("REDIS_ENABLED", true),
		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),

		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		YouTubeMaxResults: int64(getEnvInt("YOUTUBE_MAX_RESULTS", 5)),

		APIKey: os.Getenv("API_KEY"),

		DocsUsername: getEnv("DOCS_USERNAME", "admin"),
		DocsPassword: os.Getenv("DOCS_PASSWORD"),

		AllowedOrigins: origins,

		AudioBitrate:     getEnv("AUDIO_BITRATE", "192k"),
		DownloadTimeout:  time.Duration(getEnvInt("DOWNLOAD_TIMEOUT_SECONDS", 60)) * time.Second,
		DownloadWorkers:  getEnvInt("DOWNLOAD_WORKERS", 2),
		DownloadMaxBytes: int64(getEnvInt("DOWNLOAD_MAX_BYTES", 64<<20)),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
