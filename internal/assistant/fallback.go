package assistant

import "strings"

// FallbackModel identifies replies produced by the local canned-response
// table instead of a remote backend.
const FallbackModel = "local"

// cannedResponses maps lowercase keywords to pre-written answers. The slice
// keeps scan order stable: the first keyword found in the lowercased user
// message wins.
var cannedResponses = []struct {
	keyword string
	reply   string
}{
	{"привет", "👋 Привет! Я помощник по списку покупок.\n\nМогу подсказать, что купить, предложить рецепт или помочь спланировать меню. Спросите, например: «Что купить на неделю?»"},
	{"рецепт", "🍳 *Простой ужин без рецепта под рукой:*\n\nПаста с овощами — отварите пасту, обжарьте овощи, смешайте.\n\nДля неё понадобится:\n• Макароны 1 пачка\n• Помидоры 300 г\n• Лук 1 шт\n• Сыр 150 г"},
	{"завтрак", "🥞 *Идеи для завтрака:*\n\n• Овсянка 1 пачка\n• Яйца 10 шт\n• Творог 400 г\n• Бананы 1 кг\n\nОвсянка с бананом — быстро и сытно."},
	{"ужин", "🍽 *Быстрый ужин:*\n\n• Курица 1 кг\n• Рис 1 упак\n• Овощи 500 г\n\nЗапеките курицу с овощами, рис на гарнир."},
	{"здоров", "🥗 *Основа здоровой корзины:*\n\n• Овощи 1 кг\n• Фрукты 1 кг\n• Крупы 2 упак\n• Рыба 500 г\n\nМеньше полуфабрикатов, больше свежего."},
	{"хран", "🧊 *Хранение продуктов:*\n\nОвощи — в ящике холодильника, хлеб — в хлебнице, крупы — в закрытых банках. Молочное держите на средней полке, а не в дверце."},
	{"список", "📋 Откройте «Мой список» в меню, чтобы посмотреть и отметить покупки. Добавить продукт можно кнопкой «Добавить продукт» или просто сообщением вида «Яблоки 1 кг»."},
}

const genericFallbackReply = "🤖 AI сейчас недоступен, но я могу помочь и так.\n\nСпросите меня про рецепты, завтрак, ужин, здоровое питание или хранение продуктов — или управляйте списком через меню."

// fallbackReply returns a pre-written answer for the user message. It always
// succeeds; this is the orchestrator's terminal case.
func fallbackReply(message string) string {
	text := strings.ToLower(message)
	for _, c := range cannedResponses {
		if strings.Contains(text, c.keyword) {
			return c.reply
		}
	}
	return genericFallbackReply
}
