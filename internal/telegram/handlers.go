package telegram

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"shoplist-bot/internal/assistant"
	"shoplist-bot/internal/metrics"
	"shoplist-bot/internal/session"
	"shoplist-bot/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handlerTimeout bounds one handler turn including the AI round trip.
const handlerTimeout = 60 * time.Second

func handlerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), handlerTimeout)
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	ctx, cancel := handlerContext()
	defer cancel()

	userID := msg.From.ID
	b.sessions.Clear(userID)

	if err := b.repo.AddUser(ctx, userID, msg.From.UserName, msg.From.FirstName); err != nil {
		log.Printf("Failed to register user %d: %v", userID, err)
	}
	b.send(b.newReply(msg.Chat.ID, welcomeText, mainMenuKeyboard()))
}

func (b *Bot) handleCancel(msg *tgbotapi.Message) {
	b.sessions.Clear(msg.From.ID)
	b.send(b.newReply(msg.Chat.ID, "🏠 Главное меню", mainMenuKeyboard()))
}

func (b *Bot) handleStats(msg *tgbotapi.Message) {
	userID := msg.From.ID
	if b.cfg.AdminUserID == 0 || userID != b.cfg.AdminUserID {
		b.send(b.newReply(msg.Chat.ID, "⛔ Команда доступна только администратору.", mainMenuKeyboard()))
		return
	}

	ctx, cancel := handlerContext()
	defer cancel()

	stats, err := b.repo.UserStats(ctx, userID)
	if err != nil {
		log.Printf("Failed to load stats for user %d: %v", userID, err)
	}
	usage, err := b.metrics.GetDailyUsage(ctx, 7)
	if err != nil {
		log.Printf("Failed to load AI usage: %v", err)
	}
	b.send(b.newReply(msg.Chat.ID, formatStats(stats, usage), backToMenuKeyboard()))
}

// handleProductInput consumes the text message that the awaiting-product mode
// asked for.
func (b *Bot) handleProductInput(msg *tgbotapi.Message, text string) {
	ctx, cancel := handlerContext()
	defer cancel()

	userID := msg.From.ID
	item := shopping.ParseItem(text)
	if item.Name == "" {
		b.send(b.newReply(msg.Chat.ID, "✏️ Напишите название товара, например: «Молоко 2 л».", backToMenuKeyboard()))
		return
	}

	listID, err := b.repo.GetOrCreateList(ctx, userID, shopping.DefaultListName)
	if err == nil {
		_, err = b.repo.AddProduct(ctx, listID, item.Name, item.Quantity)
	}
	b.sessions.Clear(userID)
	if err != nil {
		log.Printf("Failed to add product for user %d: %v", userID, err)
		b.send(b.newReply(msg.Chat.ID, "😔 Не получилось сохранить товар. Попробуйте ещё раз.", mainMenuKeyboard()))
		return
	}

	confirmation := fmt.Sprintf("✅ Добавлено: *%s*", item.Name)
	if item.Quantity != "" && item.Quantity != "1" {
		confirmation += fmt.Sprintf(" (%s)", item.Quantity)
	}
	b.send(b.newReply(msg.Chat.ID, confirmation, listActionsKeyboard(true)))
}

// handleIdleText decides whether free text in the idle state is an implicit AI
// question or just noise.
func (b *Bot) handleIdleText(msg *tgbotapi.Message, text string) {
	if assistant.ShouldTriggerAI(text) {
		b.answerWithAI(msg, text)
		return
	}
	b.send(b.newReply(msg.Chat.ID,
		"🤔 Я понимаю кнопки меню, вопросы про еду и сообщения вида «AI: ваш вопрос».",
		mainMenuKeyboard()))
}

// handleQuickAI serves "AI: вопрос" one-shot questions.
func (b *Bot) handleQuickAI(msg *tgbotapi.Message, question string) {
	if utf8.RuneCountInString(question) < 3 {
		b.send(b.newReply(msg.Chat.ID, "✏️ Напишите вопрос после «AI:», например: «AI: что приготовить на ужин?»", backToMenuKeyboard()))
		return
	}
	b.answerWithAI(msg, question)
}

// handleAIMessage serves text sent inside an active AI dialog.
func (b *Bot) handleAIMessage(msg *tgbotapi.Message, text string) {
	b.answerWithAI(msg, text)
}

// answerWithAI runs one assistant turn: loads the current list for prompt
// context, asks the assistant, records metrics and renders the reply. Every
// successful turn leaves the user in the sticky AI-chat mode so follow-up
// questions and the confirm button keep working.
func (b *Bot) answerWithAI(msg *tgbotapi.Message, question string) {
	ctx, cancel := handlerContext()
	defer cancel()

	userID := msg.From.ID
	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("Failed to send chat action: %v", err)
	}

	var promptItems []string
	listID, err := b.repo.GetOrCreateList(ctx, userID, shopping.DefaultListName)
	if err != nil {
		log.Printf("Failed to load list for user %d: %v", userID, err)
	} else if products, err := b.repo.Products(ctx, listID); err != nil {
		log.Printf("Failed to load products for user %d: %v", userID, err)
	} else {
		promptItems = listItemsForPrompt(products)
	}

	started := time.Now()
	resp := b.assistant.Respond(ctx, question, promptItems)
	b.recordAICall(resp, time.Since(started))

	if resp.Intent == assistant.IntentError {
		b.send(b.newReply(msg.Chat.ID, resp.Reply, backToMenuKeyboard()))
		return
	}

	b.sessions.Advance(userID, session.ModeAIChat)
	b.sessions.MarkGreeted(userID)
	b.sessions.SetPending(userID, resp.Products)
	b.send(b.newReply(msg.Chat.ID, formatAIReply(resp), aiReplyKeyboard(len(resp.Products) > 0)))
}

func (b *Bot) recordAICall(resp assistant.Response, elapsed time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	model := resp.Model
	if model == "" {
		model = "none"
	}
	err := b.metrics.Record(ctx, metrics.AICall{
		Model:     model,
		Intent:    string(resp.Intent),
		LatencyMS: elapsed.Milliseconds(),
		ReplyLen:  utf8.RuneCountInString(resp.Reply),
	})
	if err != nil {
		log.Printf("Failed to record AI metric: %v", err)
	}
}
