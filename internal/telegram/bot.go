// Package telegram is the bot transport surface: it receives webhook updates,
// routes them by conversation mode and renders replies with inline keyboards.
package telegram

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"shoplist-bot/internal/assistant"
	"shoplist-bot/internal/config"
	"shoplist-bot/internal/metrics"
	"shoplist-bot/internal/session"
	"shoplist-bot/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API, the shopping repository and the AI assistant.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	repo      *shopping.Repository
	assistant *assistant.Assistant
	sessions  *session.Manager
	metrics   *metrics.Store

	// One in-flight handler per user: rapid double-submission must not
	// interleave list updates or conversation state.
	userMu sync.Mutex
	users  map[int64]*sync.Mutex
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	repo *shopping.Repository,
	ai *assistant.Assistant,
	sessions *session.Manager,
	metricsStore *metrics.Store,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:       api,
		cfg:       cfg,
		repo:      repo,
		assistant: ai,
		sessions:  sessions,
		metrics:   metricsStore,
		users:     make(map[int64]*sync.Mutex),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	var userID int64
	switch {
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.From != nil:
		userID = update.Message.From.ID
	default:
		return
	}

	go func() {
		lock := b.userLock(userID)
		lock.Lock()
		defer lock.Unlock()

		if update.CallbackQuery != nil {
			b.processCallback(update.CallbackQuery)
			return
		}
		b.processMessage(update.Message)
	}()
}

func (b *Bot) userLock(userID int64) *sync.Mutex {
	b.userMu.Lock()
	defer b.userMu.Unlock()

	lock, ok := b.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		b.users[userID] = lock
	}
	return lock
}

var cancelWords = map[string]bool{
	"/cancel": true,
	"/menu":   true,
	"отмена":  true,
	"меню":    true,
	"cancel":  true,
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	userID := msg.From.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(msg)
		case "menu", "cancel":
			b.handleCancel(msg)
		case "stats":
			b.handleStats(msg)
		default:
			b.send(b.newReply(msg.Chat.ID, "❓ Неизвестная команда. Используйте кнопки меню.", mainMenuKeyboard()))
		}
		return
	}

	if cancelWords[strings.ToLower(text)] {
		b.handleCancel(msg)
		return
	}

	if question, ok := stripAIPrefix(text); ok {
		b.handleQuickAI(msg, question)
		return
	}

	switch b.sessions.Mode(userID) {
	case session.ModeAwaitingProduct:
		b.handleProductInput(msg, text)
	case session.ModeAwaitingQuestion, session.ModeAIChat:
		b.handleAIMessage(msg, text)
	default:
		b.handleIdleText(msg, text)
	}
}

// stripAIPrefix recognizes one-shot AI questions like "AI: что купить?".
func stripAIPrefix(text string) (string, bool) {
	for _, prefix := range []string{"AI:", "ai:", "Ai:", "АИ:", "аи:"} {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix)), true
		}
	}
	return "", false
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) newReply(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	return msg
}

func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = keyboard
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}
