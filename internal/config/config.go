package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultPerplexityURL = "https://api.perplexity.ai/chat/completions"

// Config holds the configuration for the application.
type Config struct {
	TelegramBotToken   string
	TelegramWebhookURL string

	// Perplexity API (optional: the bot degrades to local fallback answers
	// when no key is configured).
	PerplexityAPIKey string
	PerplexityAPIURL string

	DatabasePath string

	// AdminUserID may access the /stats report. Zero disables it.
	AdminUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}

	webhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	if webhookURL == "" {
		return nil, fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}

	perplexityKey := os.Getenv("PERPLEXITY_API_KEY")
	if perplexityKey == "" {
		log.Println("PERPLEXITY_API_KEY not set - AI answers will use the local fallback")
	}

	perplexityURL := os.Getenv("PERPLEXITY_API_URL")
	if perplexityURL == "" {
		perplexityURL = defaultPerplexityURL
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/shopping.db"
	}

	var adminID int64
	if s := os.Getenv("ADMIN_USER_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_USER_ID %q: %w", s, err)
		}
		adminID = id
	}

	return &Config{
		TelegramBotToken:   botToken,
		TelegramWebhookURL: webhookURL,
		PerplexityAPIKey:   perplexityKey,
		PerplexityAPIURL:   perplexityURL,
		DatabasePath:       dbPath,
		AdminUserID:        adminID,
	}, nil
}
