package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Suggestion is a product candidate extracted from an AI reply. It exists
// only for the lifetime of one AI turn unless the user confirms it.
type Suggestion struct {
	Name     string
	Quantity string
}

const maxSuggestions = 5

// Line-item shapes recognized in free-form prose. The three patterns are
// applied independently and their matches merged.
var (
	bulletLinePattern   = regexp.MustCompile(`(?m)^\s*[-•*]\s+(.+)$`)
	numberedLinePattern = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+(.+)$`)
	dashLinePattern     = regexp.MustCompile(`(?m)^([^-–—\n]{3,}?)\s+[-–—]\s+(\d+(?:[.,]\d+)?\s*[^\s-]+)\s*$`)
)

// quantityUnits is the unit vocabulary for splitting a quantity off a matched
// line. Stems on purpose.
var quantityUnits = []string{
	"кг", "гр", "г", "л", "мл",
	"шт", "штук", "упак", "пачк", "банк", "бутыл", "булк", "буханк",
}

// ExtractSuggestions scans free-form text for line-item-shaped substrings and
// returns up to five deduplicated product candidates. It is a heuristic:
// callers must never persist the output without user confirmation.
func ExtractSuggestions(text string) []Suggestion {
	var suggestions []Suggestion
	seen := make(map[string]bool)

	add := func(name, quantity string) {
		name = cleanName(name)
		if utf8.RuneCountInString(name) <= 2 {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		if quantity == "" {
			quantity = "1"
		}
		suggestions = append(suggestions, Suggestion{Name: name, Quantity: strings.TrimSpace(quantity)})
	}

	for _, m := range bulletLinePattern.FindAllStringSubmatch(text, -1) {
		name, quantity := splitCandidate(m[1])
		add(name, quantity)
	}
	for _, m := range numberedLinePattern.FindAllStringSubmatch(text, -1) {
		name, quantity := splitCandidate(m[1])
		add(name, quantity)
	}
	for _, m := range dashLinePattern.FindAllStringSubmatch(text, -1) {
		if hasUnit(m[2]) {
			add(m[1], m[2])
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// splitCandidate separates a quantity tail from a single captured string: a
// final token containing a unit (optionally preceded by a numeral) becomes
// the quantity, the remainder the name.
func splitCandidate(s string) (string, string) {
	// A captured bullet line may itself be dash-separated.
	if parts := strings.SplitN(s, " - ", 2); len(parts) == 2 && hasUnit(parts[1]) {
		return parts[0], strings.TrimSpace(parts[1])
	}

	words := strings.Fields(s)
	if len(words) < 2 {
		return s, ""
	}

	last := words[len(words)-1]
	if hasUnit(last) {
		if len(words) >= 3 && isNumeral(words[len(words)-2]) {
			return strings.Join(words[:len(words)-2], " "), words[len(words)-2] + " " + last
		}
		return strings.Join(words[:len(words)-1], " "), last
	}
	return s, ""
}

func hasUnit(s string) bool {
	s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
	for _, u := range quantityUnits {
		if strings.Contains(s, u) {
			return true
		}
	}
	return false
}

func isNumeral(word string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(word, ",", "."), 64)
	return err == nil
}

// cleanName strips markdown decoration and stray punctuation that AI replies
// wrap product names in.
func cleanName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '*', '_', '`', '~', '#':
			return -1
		}
		return r
	}, name)
	return strings.Trim(strings.TrimSpace(name), "-–—:;,. ")
}
