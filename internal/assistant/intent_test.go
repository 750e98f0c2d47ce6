package assistant

import "testing"

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"Дай рецепт борща", IntentRecipe},
		{"Что купить на неделю", IntentShopping},
		{"Как хранить овощи", IntentAdvice},
		{"Привет", IntentGeneral},
		{"РЕЦЕПТ ПАСТЫ", IntentRecipe},
		// recipe wins over shopping when both keyword sets match
		{"Что купить для рецепта пасты", IntentRecipe},
		{"Посоветуй что-нибудь", IntentAdvice},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			if got := ClassifyIntent(tc.message); got != tc.want {
				t.Errorf("ClassifyIntent(%q) = %s, want %s", tc.message, got, tc.want)
			}
		})
	}
}

func TestClassifyIntentNeverSynthetic(t *testing.T) {
	for _, msg := range []string{"Привет", "ошибка", "welcome", "простой вопрос?"} {
		got := ClassifyIntent(msg)
		if got == IntentWelcome || got == IntentError || got == IntentSimple {
			t.Errorf("ClassifyIntent(%q) produced synthetic tag %s", msg, got)
		}
	}
}

func TestShouldTriggerAI(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"Дай рецепт борща", true},
		{"что купить на завтрак", true},
		{"Как хранить сыр?", true},
		{"где купить специи?", true},
		{"Молоко", false},
		{"Хлеб 2 буханки", false},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			if got := ShouldTriggerAI(tc.message); got != tc.want {
				t.Errorf("ShouldTriggerAI(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}
