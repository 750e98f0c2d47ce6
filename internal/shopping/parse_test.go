package shopping

import "testing"

func TestParseItem(t *testing.T) {
	cases := []struct {
		input    string
		name     string
		quantity string
	}{
		{"Молоко", "Молоко", "1"},
		{"Яблоки 1 кг", "Яблоки", "1 кг"},
		{"Помидоры 500г", "Помидоры", "500г"},
		{"Хлеб 2 буханки", "Хлеб", "2 буханки"},
		{"Вода 1,5 л", "Вода", "1,5 л"},
		{"Яйца 10", "Яйца", "10"},
		{"Оливковое масло 1 бутылка", "Оливковое масло", "1 бутылка"},
		{"  Сыр  ", "Сыр", "1"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			item := ParseItem(tc.input)
			if item.Name != tc.name {
				t.Errorf("Expected name '%s', got '%s'", tc.name, item.Name)
			}
			if item.Quantity != tc.quantity {
				t.Errorf("Expected quantity '%s', got '%s'", tc.quantity, item.Quantity)
			}
		})
	}
}

func TestParseItemUnitOnly(t *testing.T) {
	// A lone unit token must not swallow the whole name.
	item := ParseItem("кг")
	if item.Name != "кг" || item.Quantity != "1" {
		t.Errorf("Expected {кг, 1}, got {%s, %s}", item.Name, item.Quantity)
	}
}
