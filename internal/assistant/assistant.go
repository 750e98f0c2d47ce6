// Package assistant turns free-text user questions into structured answers:
// it orchestrates the remote AI backend variants, degrades to a local
// canned-response table, and post-processes replies with a heuristic product
// extractor and an intent classifier.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shoplist-bot/internal/llm"
)

const (
	// Replies are bounded by the Telegram message size limit.
	maxReplyRunes    = 4000
	truncationMarker = "...\n\n*[Ответ сокращен]*"

	// Only a small prefix of the list is embedded into the prompt.
	maxListItemsInPrompt = 8
)

const systemPromptRules = "Ты помощник для составления списка покупок. " +
	"Отвечай на русском языке, кратко и по делу, не длиннее нескольких абзацев. " +
	"Используй эмодзи для наглядности. " +
	"Если рекомендуешь продукты, оформи их маркированным списком вида «- Название количество»."

// Completer is the outbound LLM surface consumed by the assistant.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, system, user string) (reply, model string, err error)
}

// Response is the structured result of one AI turn.
type Response struct {
	Reply    string
	Products []Suggestion
	Intent   Intent
	Model    string
}

// Assistant is the AI response orchestrator.
type Assistant struct {
	llm Completer
}

// New creates an Assistant on top of the given backend.
func New(llm Completer) *Assistant {
	return &Assistant{llm: llm}
}

const (
	noKeyReply = "🤖 AI помощник недоступен: не настроен ключ Perplexity API.\n\n" +
		"Получите ключ на https://www.perplexity.ai/settings/api и добавьте его в .env как PERPLEXITY_API_KEY."
	badKeyReply = "🤖 Неверный API ключ Perplexity. Получите новый ключ на https://www.perplexity.ai/settings/api."
	rateReply   = "🤖 Слишком много запросов к AI. Попробуйте через минуту."
)

// Respond answers a user message, taking the current unbought list items into
// account. It never returns an error: every failure branch produces a usable
// Response.
func (a *Assistant) Respond(ctx context.Context, userMessage string, currentList []string) Response {
	if !a.llm.Configured() {
		return Response{Reply: noKeyReply, Intent: IntentError}
	}

	reply, model, err := a.llm.Complete(ctx, systemPromptRules, buildUserPrompt(userMessage, currentList))
	switch {
	case err == nil:
		// remote reply, handled below
	case errors.Is(err, llm.ErrUnauthorized):
		return Response{Reply: badKeyReply, Intent: IntentError}
	case errors.Is(err, llm.ErrRateLimited):
		return Response{Reply: rateReply, Intent: IntentError}
	default:
		// Terminal case: the local table always answers.
		reply = fallbackReply(userMessage)
		return Response{
			Reply:    reply,
			Products: ExtractSuggestions(reply),
			Intent:   IntentSimple,
			Model:    FallbackModel,
		}
	}

	return Response{
		Reply:    truncate(reply),
		Products: ExtractSuggestions(reply),
		Intent:   ClassifyIntent(userMessage),
		Model:    model,
	}
}

func buildUserPrompt(userMessage string, currentList []string) string {
	listText := "Список покупок пуст"
	if len(currentList) > 0 {
		items := currentList
		if len(items) > maxListItemsInPrompt {
			items = items[:maxListItemsInPrompt]
		}
		listText = "Текущий список покупок: " + strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s. Вопрос пользователя: %s", listText, userMessage)
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxReplyRunes {
		return s
	}
	return string(runes[:maxReplyRunes]) + truncationMarker
}
