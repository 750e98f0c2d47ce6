package telegram

import (
	"strings"
	"testing"

	"shoplist-bot/internal/assistant"
	"shoplist-bot/internal/metrics"
	"shoplist-bot/internal/shopping"
)

func TestFormatProductListEmpty(t *testing.T) {
	got := formatProductList(nil)
	if !strings.Contains(got, "пуст") {
		t.Errorf("Expected empty-list text, got %q", got)
	}
}

func TestFormatProductListPartitionsAndTotals(t *testing.T) {
	products := []shopping.Product{
		{ID: 1, Name: "Молоко", Quantity: "2 л", Bought: false},
		{ID: 2, Name: "Хлеб", Quantity: "1", Bought: false},
		{ID: 3, Name: "Сыр", Quantity: "300 г", Bought: true},
	}

	got := formatProductList(products)

	needIdx := strings.Index(got, "Нужно купить")
	doneIdx := strings.Index(got, "Уже куплено")
	if needIdx == -1 || doneIdx == -1 || needIdx > doneIdx {
		t.Fatalf("Expected unbought section before bought section, got:\n%s", got)
	}
	if !strings.Contains(got, "Молоко (2 л)") {
		t.Errorf("Expected quantity rendered next to the name, got:\n%s", got)
	}
	if strings.Contains(got, "Хлеб (1)") {
		t.Errorf("Expected default quantity omitted, got:\n%s", got)
	}
	if !strings.Contains(got, "✅ Сыр (300 г)") {
		t.Errorf("Expected bought marker on bought item, got:\n%s", got)
	}
	if !strings.Contains(got, "Всего: 3 | Куплено: 1 | Осталось: 2") {
		t.Errorf("Expected totals line, got:\n%s", got)
	}
}

func TestFormatAIReply(t *testing.T) {
	resp := assistant.Response{
		Reply:  "Для борща нужны свекла и капуста.",
		Model:  "sonar-pro",
		Intent: assistant.IntentRecipe,
		Products: []assistant.Suggestion{
			{Name: "Свекла", Quantity: "2 шт"},
			{Name: "Капуста", Quantity: "1"},
		},
	}

	got := formatAIReply(resp)
	if !strings.Contains(got, "_(sonar-pro)_") {
		t.Errorf("Expected model tag, got:\n%s", got)
	}
	if !strings.Contains(got, "• Свекла (2 шт)") {
		t.Errorf("Expected suggestion with quantity, got:\n%s", got)
	}
	if !strings.Contains(got, "• Капуста\n") {
		t.Errorf("Expected suggestion without default quantity, got:\n%s", got)
	}
}

func TestFormatAIReplyWithoutSuggestions(t *testing.T) {
	got := formatAIReply(assistant.Response{Reply: "Привет!", Model: "local"})
	if strings.Contains(got, "Могу добавить") {
		t.Errorf("Expected no suggestions block, got:\n%s", got)
	}
}

func TestFormatStats(t *testing.T) {
	got := formatStats(shopping.Stats{Total: 5, Bought: 2, Remaining: 3}, []metrics.DailyUsage{
		{Date: "2026-08-28", Calls: 4, AvgLatencyMS: 350},
	})
	if !strings.Contains(got, "Товаров в списке: 5") {
		t.Errorf("Expected totals, got:\n%s", got)
	}
	if !strings.Contains(got, "2026-08-28 — 4 запр., в среднем 350 мс") {
		t.Errorf("Expected usage line, got:\n%s", got)
	}

	empty := formatStats(shopping.Stats{}, nil)
	if !strings.Contains(empty, "не было") {
		t.Errorf("Expected empty-usage text, got:\n%s", empty)
	}
}

func TestListItemsForPrompt(t *testing.T) {
	products := []shopping.Product{
		{Name: "Молоко", Quantity: "2 л", Bought: false},
		{Name: "Сыр", Quantity: "1", Bought: true},
		{Name: "Хлеб", Quantity: "1", Bought: false},
	}

	got := listItemsForPrompt(products)
	if len(got) != 2 {
		t.Fatalf("Expected bought items excluded, got %v", got)
	}
	if got[0] != "Молоко (2 л)" || got[1] != "Хлеб" {
		t.Errorf("Unexpected prompt items: %v", got)
	}
}

func TestStripAIPrefix(t *testing.T) {
	tests := []struct {
		input    string
		question string
		ok       bool
	}{
		{"AI: что купить?", "что купить?", true},
		{"ai: рецепт борща", "рецепт борща", true},
		{"АИ: совет", "совет", true},
		{"Привет", "", false},
		{"мой AI: вопрос", "", false},
	}

	for _, tt := range tests {
		question, ok := stripAIPrefix(tt.input)
		if ok != tt.ok || question != tt.question {
			t.Errorf("stripAIPrefix(%q) = (%q, %v), expected (%q, %v)",
				tt.input, question, ok, tt.question, tt.ok)
		}
	}
}

func TestKeyboardCallbacksCoverProducts(t *testing.T) {
	products := []shopping.Product{
		{ID: 7, Name: "Молоко"},
		{ID: 9, Name: "Хлеб", Bought: true},
	}

	mark := markProductsKeyboard(products)
	var toggles []string
	for _, row := range mark.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil && strings.HasPrefix(*btn.CallbackData, cbTogglePrefix) {
				toggles = append(toggles, *btn.CallbackData)
			}
		}
	}
	if len(toggles) != 2 || toggles[0] != "toggle_7" || toggles[1] != "toggle_9" {
		t.Errorf("Expected one toggle per product, got %v", toggles)
	}

	manage := manageProductsKeyboard(products)
	var deletes []string
	for _, row := range manage.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil && strings.HasPrefix(*btn.CallbackData, cbDeletePrefix) {
				deletes = append(deletes, *btn.CallbackData)
			}
		}
	}
	if len(deletes) != 2 || deletes[0] != "delete_7" || deletes[1] != "delete_9" {
		t.Errorf("Expected one delete per product, got %v", deletes)
	}
}
