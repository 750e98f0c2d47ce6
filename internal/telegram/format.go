package telegram

import (
	"fmt"
	"strings"

	"shoplist-bot/internal/assistant"
	"shoplist-bot/internal/metrics"
	"shoplist-bot/internal/shopping"
)

const (
	welcomeText = "👋 Привет! Я бот для семейного списка покупок.\n\n" +
		"Добавляйте продукты, отмечайте купленное и спрашивайте AI помощника " +
		"про рецепты и покупки. Всё управление — кнопками ниже."

	aiWelcomeBanner = "🤖 *AI помощник на связи!*\n\n" +
		"Спросите меня про рецепты, что купить или как хранить продукты. " +
		"Я вижу ваш текущий список и учту его в ответе.\n\n" +
		"Для выхода нажмите кнопку ниже или напишите «меню»."

	emptyListText = "📝 Список покупок пуст.\n\nНажмите «Добавить товар», чтобы начать."
)

// formatProductList renders the shopping list as a Markdown message:
// unbought items first, bought ones below, totals at the bottom.
func formatProductList(products []shopping.Product) string {
	if len(products) == 0 {
		return emptyListText
	}

	var unbought, bought []shopping.Product
	for _, p := range products {
		if p.Bought {
			bought = append(bought, p)
		} else {
			unbought = append(unbought, p)
		}
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Ваш список покупок*\n")

	if len(unbought) > 0 {
		sb.WriteString("\n*Нужно купить:*\n")
		for _, p := range unbought {
			sb.WriteString(fmt.Sprintf("• %s\n", formatProduct(p)))
		}
	}
	if len(bought) > 0 {
		sb.WriteString("\n*Уже куплено:*\n")
		for _, p := range bought {
			sb.WriteString(fmt.Sprintf("• ✅ %s\n", formatProduct(p)))
		}
	}

	sb.WriteString(fmt.Sprintf("\nВсего: %d | Куплено: %d | Осталось: %d",
		len(products), len(bought), len(unbought)))
	return sb.String()
}

func formatProduct(p shopping.Product) string {
	if p.Quantity == "" || p.Quantity == "1" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Quantity)
}

// formatAIReply renders one assistant turn. Suggested products, if any, are
// listed below the answer so the confirm button has visible content.
func formatAIReply(resp assistant.Response) string {
	var sb strings.Builder
	sb.WriteString("🤖 *AI помощник*")
	if resp.Model != "" {
		sb.WriteString(fmt.Sprintf(" _(%s)_", resp.Model))
	}
	sb.WriteString("\n\n")
	sb.WriteString(resp.Reply)

	if len(resp.Products) > 0 {
		sb.WriteString("\n\n📋 *Могу добавить в список:*\n")
		for _, s := range resp.Products {
			if s.Quantity != "" && s.Quantity != "1" {
				sb.WriteString(fmt.Sprintf("• %s (%s)\n", s.Name, s.Quantity))
			} else {
				sb.WriteString(fmt.Sprintf("• %s\n", s.Name))
			}
		}
	}
	return sb.String()
}

// formatStats renders the admin /stats report.
func formatStats(stats shopping.Stats, usage []metrics.DailyUsage) string {
	var sb strings.Builder
	sb.WriteString("📊 *Статистика*\n\n")
	sb.WriteString(fmt.Sprintf("Товаров в списке: %d\nКуплено: %d\nОсталось: %d\n",
		stats.Total, stats.Bought, stats.Remaining))

	if len(usage) == 0 {
		sb.WriteString("\nОбращений к AI за неделю не было.")
		return sb.String()
	}
	sb.WriteString("\n*AI за последние дни:*\n")
	for _, u := range usage {
		sb.WriteString(fmt.Sprintf("• %s — %d запр., в среднем %d мс\n", u.Date, u.Calls, u.AvgLatencyMS))
	}
	return sb.String()
}

// listItemsForPrompt renders unbought products the way the assistant expects
// them in its prompt context.
func listItemsForPrompt(products []shopping.Product) []string {
	var items []string
	for _, p := range products {
		if p.Bought {
			continue
		}
		items = append(items, formatProduct(p))
	}
	return items
}
