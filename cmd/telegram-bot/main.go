package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoplist-bot/internal/assistant"
	"shoplist-bot/internal/config"
	"shoplist-bot/internal/database"
	"shoplist-bot/internal/llm"
	"shoplist-bot/internal/metrics"
	"shoplist-bot/internal/session"
	"shoplist-bot/internal/shopping"
	"shoplist-bot/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize the SQLite database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := shopping.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// 3. Initialize the AI assistant
	perplexity := llm.NewClient(cfg.PerplexityAPIKey, cfg.PerplexityAPIURL)
	ai := assistant.New(perplexity)

	sessions := session.NewManager(session.DefaultTTL)

	// 4. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, repo, ai, sessions, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 5. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
