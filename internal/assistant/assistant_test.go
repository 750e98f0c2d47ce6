package assistant

import (
	"context"
	"strings"
	"testing"

	"shoplist-bot/internal/llm"
)

type fakeCompleter struct {
	configured bool
	reply      string
	model      string
	err        error
	calls      int
	lastUser   string
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(_ context.Context, _, user string) (string, string, error) {
	f.calls++
	f.lastUser = user
	return f.reply, f.model, f.err
}

func TestRespondWithoutCredential(t *testing.T) {
	fake := &fakeCompleter{configured: false}
	a := New(fake)

	resp := a.Respond(context.Background(), "Дай рецепт борща", nil)

	if resp.Intent != IntentError {
		t.Errorf("Expected intent error, got %s", resp.Intent)
	}
	if resp.Reply == "" {
		t.Error("Expected a remediation reply")
	}
	if len(resp.Products) != 0 {
		t.Errorf("Expected no products, got %+v", resp.Products)
	}
	if fake.calls != 0 {
		t.Errorf("Expected no backend calls, got %d", fake.calls)
	}
}

func TestRespondSuccess(t *testing.T) {
	fake := &fakeCompleter{
		configured: true,
		reply:      "Для борща купите:\n- Свёкла 500 г\n- Капуста 1 шт\n",
		model:      "sonar-pro",
	}
	a := New(fake)

	resp := a.Respond(context.Background(), "Дай рецепт борща", []string{"Молоко (1)"})

	if resp.Intent != IntentRecipe {
		t.Errorf("Expected intent recipe, got %s", resp.Intent)
	}
	if resp.Model != "sonar-pro" {
		t.Errorf("Expected model sonar-pro, got %s", resp.Model)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("Expected 2 suggested products, got %d", len(resp.Products))
	}
	if resp.Products[0].Name != "Свёкла" {
		t.Errorf("Expected 'Свёкла', got '%s'", resp.Products[0].Name)
	}
	if !strings.Contains(fake.lastUser, "Молоко (1)") {
		t.Error("Expected the current list embedded in the prompt")
	}
	if !strings.Contains(fake.lastUser, "Дай рецепт борща") {
		t.Error("Expected the user question embedded in the prompt")
	}
}

func TestRespondListPrefixBounded(t *testing.T) {
	fake := &fakeCompleter{configured: true, reply: "ок, понял", model: "sonar"}
	a := New(fake)

	list := make([]string, 20)
	for i := range list {
		list[i] = "Товар"
	}
	a.Respond(context.Background(), "Что купить?", list)

	if got := strings.Count(fake.lastUser, "Товар"); got != maxListItemsInPrompt {
		t.Errorf("Expected %d list items in the prompt, got %d", maxListItemsInPrompt, got)
	}
}

func TestRespondFallsBackLocally(t *testing.T) {
	fake := &fakeCompleter{configured: true, err: llm.ErrAllModelsFailed}
	a := New(fake)

	resp := a.Respond(context.Background(), "посоветуй завтрак", nil)

	if resp.Model != FallbackModel {
		t.Errorf("Expected fallback model %q, got %q", FallbackModel, resp.Model)
	}
	if resp.Intent != IntentSimple {
		t.Errorf("Expected intent simple, got %s", resp.Intent)
	}
	if resp.Reply == "" {
		t.Error("Expected a non-empty fallback reply")
	}
	// The breakfast canned answer carries a product list the extractor finds.
	if len(resp.Products) == 0 {
		t.Error("Expected suggestions extracted from the canned reply")
	}
}

func TestRespondUnauthorizedAndRateLimited(t *testing.T) {
	t.Run("Unauthorized", func(t *testing.T) {
		fake := &fakeCompleter{configured: true, err: llm.ErrUnauthorized}
		resp := New(fake).Respond(context.Background(), "вопрос", nil)
		if resp.Intent != IntentError {
			t.Errorf("Expected intent error, got %s", resp.Intent)
		}
		if !strings.Contains(resp.Reply, "ключ") {
			t.Errorf("Expected credential remediation reply, got %q", resp.Reply)
		}
	})

	t.Run("RateLimited", func(t *testing.T) {
		fake := &fakeCompleter{configured: true, err: llm.ErrRateLimited}
		resp := New(fake).Respond(context.Background(), "вопрос", nil)
		if resp.Intent != IntentError {
			t.Errorf("Expected intent error, got %s", resp.Intent)
		}
		if !strings.Contains(resp.Reply, "минуту") {
			t.Errorf("Expected retry-later reply, got %q", resp.Reply)
		}
	})
}

func TestRespondTruncatesLongReply(t *testing.T) {
	fake := &fakeCompleter{
		configured: true,
		reply:      strings.Repeat("а", maxReplyRunes+100),
		model:      "sonar",
	}
	a := New(fake)

	resp := a.Respond(context.Background(), "вопрос", nil)

	if !strings.HasSuffix(resp.Reply, truncationMarker) {
		t.Error("Expected truncation marker on long reply")
	}
	runes := []rune(resp.Reply)
	if len(runes) > maxReplyRunes+len([]rune(truncationMarker)) {
		t.Errorf("Reply too long after truncation: %d runes", len(runes))
	}
}

func TestFallbackReplyStableOrder(t *testing.T) {
	// "привет" comes before "рецепт" in the table, so a message with both
	// keywords resolves to the greeting.
	reply := fallbackReply("Привет! Дай рецепт")
	if !strings.Contains(reply, "Привет") {
		t.Errorf("Expected greeting reply, got %q", reply)
	}

	generic := fallbackReply("абвгд")
	if generic != genericFallbackReply {
		t.Errorf("Expected generic fallback, got %q", generic)
	}
}
