package telegram

import (
	"fmt"

	"shoplist-bot/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values. Product-scoped actions carry the product id as a
// numeric suffix, e.g. "toggle_42".
const (
	cbMainMenu       = "main_menu"
	cbViewList       = "view_list"
	cbAddProduct     = "add_product"
	cbAIHelp         = "ai_help"
	cbExitAIChat     = "exit_ai_chat"
	cbAddAIProducts  = "add_ai_products"
	cbManageProducts = "manage_products"
	cbMarkProducts   = "mark_products"
	cbMarkAll        = "mark_all"
	cbUnmarkAll      = "unmark_all"
	cbClearOptions   = "clear_options"
	cbClearBought    = "clear_bought"
	cbClearAll       = "clear_all"
	cbTogglePrefix   = "toggle_"
	cbDeletePrefix   = "delete_"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Список покупок", cbViewList),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить товар", cbAddProduct),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤖 AI помощник", cbAIHelp),
		),
	)
}

func backToMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Главное меню", cbMainMenu),
		),
	)
}

// listActionsKeyboard sits under the rendered list.
func listActionsKeyboard(hasProducts bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить", cbAddProduct),
		),
	}
	if hasProducts {
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("☑️ Отметить", cbMarkProducts),
				tgbotapi.NewInlineKeyboardButtonData("✏️ Управление", cbManageProducts),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить", cbClearOptions),
			),
		)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Главное меню", cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// markProductsKeyboard shows one toggle button per product plus bulk actions.
func markProductsKeyboard(products []shopping.Product) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range products {
		label := "⬜ " + p.Name
		if p.Bought {
			label = "✅ " + p.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbTogglePrefix, p.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Все куплены", cbMarkAll),
			tgbotapi.NewInlineKeyboardButtonData("⬜ Сбросить все", cbUnmarkAll),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ К списку", cbViewList),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// manageProductsKeyboard pairs each product with a delete button.
func manageProductsKeyboard(products []shopping.Product) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range products {
		label := "⬜ " + p.Name
		if p.Bought {
			label = "✅ " + p.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbTogglePrefix, p.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("%s%d", cbDeletePrefix, p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ К списку", cbViewList),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func clearOptionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Удалить купленные", cbClearBought),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить всё", cbClearAll),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ К списку", cbViewList),
		),
	)
}

// aiReplyKeyboard is attached to assistant answers. The confirm button is
// present only when the extractor found products to add.
func aiReplyKeyboard(hasSuggestions bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if hasSuggestions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить в список", cbAddAIProducts),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти из чата", cbExitAIChat),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Меню", cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
