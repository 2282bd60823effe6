package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	defaultAddr        = ":8080"
	defaultPublishCron = "* * * * *"
	defaultMongoDB     = "reelstudio"
)

// Config holds the settings read from the environment (and .env when present).
type Config struct {
	HTTPAddr string
	Store    string

	DatabaseDSN   string
	MongoURI      string
	MongoDatabase string

	LogLevel  string
	LogFormat string

	WhisperURL  string
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	PublishCron       string
	PublishWebhookURL string

	SlotsFile string
	Slots     Slots
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("config: cannot read .env")
	}

	cfg := Config{
		HTTPAddr:          getenv("HTTP_ADDR", defaultAddr),
		Store:             strings.ToLower(getenv("STORE", StorePostgres)),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getenv("MONGO_DATABASE", defaultMongoDB),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "text"),
		WhisperURL:        os.Getenv("WHISPER_URL"),
		LLMEndpoint:       os.Getenv("LLM_ENDPOINT"),
		LLMAPIKey:         os.Getenv("LLM_API_KEY"),
		LLMModel:          getenv("LLM_MODEL", "gpt-4o-mini"),
		PublishCron:       getenv("PUBLISH_CRON", defaultPublishCron),
		PublishWebhookURL: os.Getenv("PUBLISH_WEBHOOK_URL"),
		SlotsFile:         os.Getenv("POSTING_SLOTS_FILE"),
		Slots:             DefaultSlots(),
	}

	// Supabase-style deployments only set SUPABASE_DSN.
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = os.Getenv("SUPABASE_DSN")
	}

	if cfg.SlotsFile != "" {
		slots, err := LoadSlots(cfg.SlotsFile)
		if err != nil {
			return cfg, err
		}
		cfg.Slots = slots
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("config: DATABASE_DSN is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}

	return c.Slots.Validate()
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
