package shopping

import (
	"strconv"
	"strings"
)

// units is the closed vocabulary used to split a quantity off a free-text
// product line. Stems on purpose: "пачк" covers "пачка"/"пачки" etc.
var units = []string{
	"кг", "гр", "г", "л", "мл",
	"шт", "штук", "упак", "пачк", "банк", "бутыл", "булк", "буханк",
}

// ParseItem splits free-form product input like "Яблоки 1 кг" into a name and
// a quantity. When no quantity can be recognized, the whole text becomes the
// name and the quantity defaults to "1".
func ParseItem(text string) Item {
	text = strings.TrimSpace(text)
	item := Item{Name: text, Quantity: "1"}

	words := strings.Fields(text)
	if len(words) < 2 {
		return item
	}

	last := words[len(words)-1]
	switch {
	case containsUnit(last):
		if len(words) >= 3 && isNumeric(words[len(words)-2]) {
			item.Quantity = words[len(words)-2] + " " + last
			item.Name = strings.Join(words[:len(words)-2], " ")
		} else {
			item.Quantity = last
			item.Name = strings.Join(words[:len(words)-1], " ")
		}
	case isNumeric(last):
		item.Quantity = last
		item.Name = strings.Join(words[:len(words)-1], " ")
	}

	if strings.TrimSpace(item.Name) == "" {
		return Item{Name: text, Quantity: "1"}
	}
	return item
}

func containsUnit(word string) bool {
	word = strings.ToLower(word)
	for _, u := range units {
		if strings.Contains(word, u) {
			return true
		}
	}
	return false
}

func isNumeric(word string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(word, ",", "."), 64)
	return err == nil
}
