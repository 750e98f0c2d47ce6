package assistant

import (
	"regexp"
	"strings"
)

// Intent is the coarse categorical purpose of a user message, used by the
// transport layer to pick follow-up keyboards.
type Intent string

const (
	IntentRecipe   Intent = "recipe"
	IntentShopping Intent = "shopping"
	IntentAdvice   Intent = "advice"
	IntentGeneral  Intent = "general"

	// Synthetic tags assigned by the orchestrator or the transport layer,
	// never by the keyword scan.
	IntentWelcome Intent = "welcome"
	IntentError   Intent = "error"
	IntentSimple  Intent = "simple"
)

// Keyword sets are matched as lowercase substrings, in priority order:
// recipe first, then shopping, then advice. Stems on purpose.
var (
	recipeKeywords = []string{
		"рецепт", "приготов", "готовить", "ингредиент", "блюдо", "испечь", "сварить",
	}
	shoppingKeywords = []string{
		"купить", "покупк", "список", "магазин", "продукт",
	}
	adviceKeywords = []string{
		"посоветуй", "рекоменд", "совет", "хран", "замен", "альтернатив", "выбрать",
	}
)

// ClassifyIntent tags a user message with the first matching keyword set, or
// IntentGeneral when nothing matches.
func ClassifyIntent(message string) Intent {
	text := strings.ToLower(message)

	for _, kw := range recipeKeywords {
		if strings.Contains(text, kw) {
			return IntentRecipe
		}
	}
	for _, kw := range shoppingKeywords {
		if strings.Contains(text, kw) {
			return IntentShopping
		}
	}
	for _, kw := range adviceKeywords {
		if strings.Contains(text, kw) {
			return IntentAdvice
		}
	}
	return IntentGeneral
}

// aiTriggers routes ad-hoc free text to the assistant even outside an
// explicit AI dialog.
var aiTriggers = []string{
	"рецепт", "приготовить", "готовить", "как сделать", "ингредиенты",
	"что купить", "посоветуй", "рекомендуй", "нужно для", "список для",
	"как хранить", "сколько", "где купить", "что лучше", "альтернатива",
	"заменить", "диета", "здоровое", "быстро", "просто", "вкусно",
}

// \b is ASCII-only in Go regexp, so word edges around Cyrillic are spelled
// out explicitly.
var questionPattern = regexp.MustCompile(`(^|\s)(что|как|где|когда|зачем|почему)\s.*\?`)

// ShouldTriggerAI reports whether a free-text message outside any dialog mode
// looks like a question for the assistant rather than list management.
func ShouldTriggerAI(message string) bool {
	text := strings.ToLower(message)

	for _, trigger := range aiTriggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return questionPattern.MatchString(text)
}
