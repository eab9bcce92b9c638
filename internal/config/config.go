// Package config resolves settings from flags, the environment, and an
// optional .env file. Flags win over environment values.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL        string
	LogFile       string
	Debug         bool
	CacheSize     int
	AltScreen     bool
	StageInterval time.Duration
}

// Parse loads .env if present, then parses command-line flags with
// environment-backed defaults.
func Parse() Config {
	_ = godotenv.Load()

	cfg := Config{}
	flag.StringVar(&cfg.APIURL, "api-url", envOr("WISDOMARC_API_URL", "http://127.0.0.1:8000"), "WisdomArc reasoning service base URL")
	flag.StringVar(&cfg.LogFile, "log-file", envOr("WISDOMARC_LOG_FILE", ""), "Structured log file path (empty disables logging)")
	flag.BoolVar(&cfg.Debug, "debug", envOrBool("WISDOMARC_DEBUG", false), "Enable debug-level logging")
	flag.IntVar(&cfg.CacheSize, "cache-size", envOrInt("WISDOMARC_CACHE_SIZE", 64), "Client-side response cache entries")
	flag.BoolVar(&cfg.AltScreen, "alt-screen", envOrBool("WISDOMARC_ALT_SCREEN", true), "Run the TUI on the terminal alternate screen")
	stageMS := flag.Int("stage-interval-ms", envOrInt("WISDOMARC_STAGE_INTERVAL_MS", 800), "Delay between simulated reasoning stages (milliseconds)")
	flag.Parse()

	if *stageMS < 1 {
		*stageMS = 1
	}
	cfg.StageInterval = time.Duration(*stageMS) * time.Millisecond
	return cfg
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
