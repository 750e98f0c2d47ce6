package assistant

import (
	"strings"
	"testing"
)

func TestExtractSuggestionsBulletLine(t *testing.T) {
	text := "Для борща вам понадобится:\n- Молоко 2 л\n- Свёкла 500 г\n"

	got := ExtractSuggestions(text)
	if len(got) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Молоко" || got[0].Quantity != "2 л" {
		t.Errorf("Expected {Молоко, 2 л}, got {%s, %s}", got[0].Name, got[0].Quantity)
	}
	if got[1].Name != "Свёкла" || got[1].Quantity != "500 г" {
		t.Errorf("Expected {Свёкла, 500 г}, got {%s, %s}", got[1].Name, got[1].Quantity)
	}
}

func TestExtractSuggestionsNumberedAndDashLines(t *testing.T) {
	text := "Купите:\n1. Картофель 2 кг\n2) Морковь\nСметана - 200 г\n"

	got := ExtractSuggestions(text)
	if len(got) != 3 {
		t.Fatalf("Expected 3 suggestions, got %d: %+v", len(got), got)
	}

	byName := make(map[string]string)
	for _, s := range got {
		byName[s.Name] = s.Quantity
	}
	if byName["Картофель"] != "2 кг" {
		t.Errorf("Expected Картофель 2 кг, got '%s'", byName["Картофель"])
	}
	if byName["Морковь"] != "1" {
		t.Errorf("Expected Морковь with default quantity, got '%s'", byName["Морковь"])
	}
	if byName["Сметана"] != "200 г" {
		t.Errorf("Expected Сметана 200 г, got '%s'", byName["Сметана"])
	}
}

func TestExtractSuggestionsCapAndDedup(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("- Молоко 1 л\n")
	sb.WriteString("- молоко 2 л\n") // case-insensitive duplicate
	for _, name := range []string{"Хлеб", "Сыр", "Яйца", "Масло", "Кофе", "Чай"} {
		sb.WriteString("- " + name + "\n")
	}

	got := ExtractSuggestions(sb.String())
	if len(got) != maxSuggestions {
		t.Fatalf("Expected %d suggestions, got %d", maxSuggestions, len(got))
	}

	seen := make(map[string]bool)
	for _, s := range got {
		key := strings.ToLower(s.Name)
		if seen[key] {
			t.Errorf("Duplicate name '%s' in output", s.Name)
		}
		seen[key] = true
	}
	if got[0].Name != "Молоко" || got[0].Quantity != "1 л" {
		t.Errorf("Expected first occurrence kept, got {%s, %s}", got[0].Name, got[0].Quantity)
	}
}

func TestExtractSuggestionsDiscardsShortNames(t *testing.T) {
	text := "- и\n- ок\n- б/у\n- Чай\n"

	got := ExtractSuggestions(text)
	if len(got) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d: %+v", len(got), got)
	}
	for _, s := range got {
		if s.Name == "и" || s.Name == "ок" {
			t.Errorf("Short candidate '%s' must be discarded", s.Name)
		}
	}
}

func TestExtractSuggestionsStripsMarkdown(t *testing.T) {
	text := "- **Молоко** 2 л\n- _Хлеб_\n"

	got := ExtractSuggestions(text)
	if len(got) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Молоко" {
		t.Errorf("Expected markdown stripped from 'Молоко', got '%s'", got[0].Name)
	}
	if got[1].Name != "Хлеб" {
		t.Errorf("Expected markdown stripped from 'Хлеб', got '%s'", got[1].Name)
	}
}

func TestExtractSuggestionsPlainProse(t *testing.T) {
	text := "Борщ лучше варить на говяжьем бульоне и подавать со сметаной."

	if got := ExtractSuggestions(text); len(got) != 0 {
		t.Errorf("Expected no suggestions from plain prose, got %+v", got)
	}
}
