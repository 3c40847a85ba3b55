package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	YTDLP   YTDLPConfig
	Storage StorageConfig
	Worker  WorkerConfig
	Log     LogConfig
}

// APIConfig holds HTTP server configuration
type APIConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// YTDLPConfig holds extraction engine configuration
type YTDLPConfig struct {
	BinaryPath     string
	CookieFile     string
	ProcessTimeout time.Duration
	VideoContainer string
	AudioContainer string
}

// StorageConfig holds file staging and serving configuration
type StorageConfig struct {
	DownloadsDir string
	ScratchRoot  string
}

// WorkerConfig holds download worker configuration
type WorkerConfig struct {
	MaxParallelDownloads int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			Port:        getEnvInt("API_PORT", 8000),
			ReadTimeout: getEnvDuration("API_READ_TIMEOUT", 30*time.Second),
			// Downloads hold the response open for the length of the
			// engine run, so the write timeout is disabled by default.
			WriteTimeout: getEnvDuration("API_WRITE_TIMEOUT", 0),
		},
		YTDLP: YTDLPConfig{
			BinaryPath:     getEnv("YTDLP_PATH", "yt-dlp"),
			CookieFile:     getEnv("YTDLP_COOKIE_FILE", ""),
			ProcessTimeout: getEnvDuration("YTDLP_PROCESS_TIMEOUT", time.Hour),
			VideoContainer: getEnv("YTDLP_VIDEO_CONTAINER", "mp4"),
			AudioContainer: getEnv("YTDLP_AUDIO_CONTAINER", "m4a"),
		},
		Storage: StorageConfig{
			DownloadsDir: getEnv("DOWNLOADS_DIR", "downloads"),
			ScratchRoot:  getEnv("SCRATCH_ROOT", os.TempDir()),
		},
		Worker: WorkerConfig{
			MaxParallelDownloads: getEnvInt("MAX_PARALLEL_DOWNLOADS", 2),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("API_PORT must be a valid port number")
	}
	if c.YTDLP.BinaryPath == "" {
		return fmt.Errorf("YTDLP_PATH is required")
	}
	if c.Storage.DownloadsDir == "" {
		return fmt.Errorf("DOWNLOADS_DIR is required")
	}
	if c.Worker.MaxParallelDownloads < 1 {
		return fmt.Errorf("MAX_PARALLEL_DOWNLOADS must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
