package telegram

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"shoplist-bot/internal/session"
	"shoplist-bot/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) processCallback(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	data := query.Data
	switch {
	case data == cbMainMenu:
		b.sessions.Clear(query.From.ID)
		kb := mainMenuKeyboard()
		b.edit(query.Message.Chat.ID, query.Message.MessageID, welcomeText, &kb)
		b.answerCallback(query.ID, "")

	case data == cbViewList:
		b.showList(query)

	case data == cbAddProduct:
		b.sessions.SetMode(query.From.ID, session.ModeAwaitingProduct)
		kb := backToMenuKeyboard()
		b.edit(query.Message.Chat.ID, query.Message.MessageID,
			"✏️ Напишите товар одним сообщением, например: «Молоко 2 л» или «Хлеб».", &kb)
		b.answerCallback(query.ID, "")

	case data == cbAIHelp:
		b.sessions.SetMode(query.From.ID, session.ModeAwaitingQuestion)
		b.sessions.MarkGreeted(query.From.ID)
		kb := aiReplyKeyboard(false)
		b.edit(query.Message.Chat.ID, query.Message.MessageID, aiWelcomeBanner, &kb)
		b.answerCallback(query.ID, "")

	case data == cbExitAIChat:
		b.sessions.Clear(query.From.ID)
		kb := mainMenuKeyboard()
		b.edit(query.Message.Chat.ID, query.Message.MessageID, "👋 Чат с AI завершен.", &kb)
		b.answerCallback(query.ID, "")

	case data == cbAddAIProducts:
		b.addSuggestedProducts(query)

	case data == cbManageProducts:
		b.showManageView(query)

	case data == cbMarkProducts:
		b.showMarkView(query)

	case data == cbMarkAll, data == cbUnmarkAll:
		b.bulkMark(query, data == cbMarkAll)

	case data == cbClearOptions:
		kb := clearOptionsKeyboard()
		b.edit(query.Message.Chat.ID, query.Message.MessageID,
			"🗑 *Очистка списка*\n\nЧто удалить?", &kb)
		b.answerCallback(query.ID, "")

	case data == cbClearBought:
		b.clearList(query, true)

	case data == cbClearAll:
		b.clearList(query, false)

	case strings.HasPrefix(data, cbTogglePrefix):
		b.toggleProduct(query, strings.TrimPrefix(data, cbTogglePrefix))

	case strings.HasPrefix(data, cbDeletePrefix):
		b.deleteProduct(query, strings.TrimPrefix(data, cbDeletePrefix))

	default:
		b.answerCallback(query.ID, "Неизвестное действие")
	}
}

func (b *Bot) answerCallback(queryID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(queryID, text)); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

// userProducts loads the user's default list and its products.
func (b *Bot) userProducts(userID int64) (int64, []shopping.Product, error) {
	ctx, cancel := handlerContext()
	defer cancel()

	listID, err := b.repo.GetOrCreateList(ctx, userID, shopping.DefaultListName)
	if err != nil {
		return 0, nil, err
	}
	products, err := b.repo.Products(ctx, listID)
	if err != nil {
		return 0, nil, err
	}
	return listID, products, nil
}

func (b *Bot) showList(query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID, "")
	b.renderList(query)
}

func (b *Bot) showManageView(query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID, "")
	b.renderManageView(query)
}

func (b *Bot) showMarkView(query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID, "")
	b.renderMarkView(query)
}

func (b *Bot) renderList(query *tgbotapi.CallbackQuery) {
	_, products, err := b.userProducts(query.From.ID)
	if err != nil {
		log.Printf("Failed to load list for user %d: %v", query.From.ID, err)
		return
	}
	kb := listActionsKeyboard(len(products) > 0)
	b.edit(query.Message.Chat.ID, query.Message.MessageID, formatProductList(products), &kb)
}

func (b *Bot) renderManageView(query *tgbotapi.CallbackQuery) {
	_, products, err := b.userProducts(query.From.ID)
	if err != nil {
		log.Printf("Failed to load list for user %d: %v", query.From.ID, err)
		return
	}
	if len(products) == 0 {
		b.renderList(query)
		return
	}
	kb := manageProductsKeyboard(products)
	b.edit(query.Message.Chat.ID, query.Message.MessageID,
		"✏️ *Управление товарами*\n\nНажмите на товар, чтобы отметить его, или 🗑 — чтобы удалить.", &kb)
}

func (b *Bot) renderMarkView(query *tgbotapi.CallbackQuery) {
	_, products, err := b.userProducts(query.From.ID)
	if err != nil {
		log.Printf("Failed to load products for user %d: %v", query.From.ID, err)
		return
	}
	if len(products) == 0 {
		b.renderList(query)
		return
	}
	kb := markProductsKeyboard(products)
	b.edit(query.Message.Chat.ID, query.Message.MessageID,
		"☑️ *Режим отметки товаров*\n\nНажмите на товар, чтобы переключить куплено/не куплено.", &kb)
}

// toggleProduct flips one product and refreshes whichever view hosted the
// button. The hosting view is recognized by the message text.
func (b *Bot) toggleProduct(query *tgbotapi.CallbackQuery, rawID string) {
	productID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		b.answerCallback(query.ID, "Неизвестный товар")
		return
	}

	ctx, cancel := handlerContext()
	defer cancel()

	ok, err := b.repo.ToggleBought(ctx, productID)
	if err != nil {
		log.Printf("Failed to toggle product %d: %v", productID, err)
		b.answerCallback(query.ID, "Ошибка обновления")
		return
	}
	if !ok {
		b.answerCallback(query.ID, "Товар уже удален")
	} else {
		b.answerCallback(query.ID, "")
	}
	b.refreshHostingView(query)
}

func (b *Bot) deleteProduct(query *tgbotapi.CallbackQuery, rawID string) {
	productID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		b.answerCallback(query.ID, "Неизвестный товар")
		return
	}

	ctx, cancel := handlerContext()
	defer cancel()

	ok, err := b.repo.DeleteProduct(ctx, productID)
	if err != nil {
		log.Printf("Failed to delete product %d: %v", productID, err)
		b.answerCallback(query.ID, "Ошибка удаления")
		return
	}
	if !ok {
		b.answerCallback(query.ID, "Товар уже удален")
	} else {
		b.answerCallback(query.ID, "Удалено")
	}
	b.refreshHostingView(query)
}

// refreshHostingView re-renders the view the pressed button lives in. The
// callback is expected to be answered already.
func (b *Bot) refreshHostingView(query *tgbotapi.CallbackQuery) {
	switch {
	case strings.Contains(query.Message.Text, "Режим отметки"):
		b.renderMarkView(query)
	case strings.Contains(query.Message.Text, "Управление товарами"):
		b.renderManageView(query)
	default:
		b.renderList(query)
	}
}

func (b *Bot) bulkMark(query *tgbotapi.CallbackQuery, bought bool) {
	ctx, cancel := handlerContext()
	defer cancel()

	listID, err := b.repo.GetOrCreateList(ctx, query.From.ID, shopping.DefaultListName)
	if err != nil {
		log.Printf("Failed to load list for user %d: %v", query.From.ID, err)
		b.answerCallback(query.ID, "Ошибка загрузки списка")
		return
	}
	changed, err := b.repo.MarkAll(ctx, listID, bought)
	if err != nil {
		log.Printf("Failed to bulk mark list %d: %v", listID, err)
		b.answerCallback(query.ID, "Ошибка обновления")
		return
	}
	b.answerCallback(query.ID, fmt.Sprintf("Изменено: %d", changed))
	b.renderMarkView(query)
}

func (b *Bot) clearList(query *tgbotapi.CallbackQuery, boughtOnly bool) {
	ctx, cancel := handlerContext()
	defer cancel()

	listID, err := b.repo.GetOrCreateList(ctx, query.From.ID, shopping.DefaultListName)
	if err != nil {
		log.Printf("Failed to load list for user %d: %v", query.From.ID, err)
		b.answerCallback(query.ID, "Ошибка загрузки списка")
		return
	}

	var removed int64
	if boughtOnly {
		removed, err = b.repo.ClearBought(ctx, listID)
	} else {
		removed, err = b.repo.ClearAll(ctx, listID)
	}
	if err != nil {
		log.Printf("Failed to clear list %d: %v", listID, err)
		b.answerCallback(query.ID, "Ошибка очистки")
		return
	}
	b.answerCallback(query.ID, fmt.Sprintf("Удалено: %d", removed))
	b.renderList(query)
}

// addSuggestedProducts persists the AI suggestions stashed on the session.
func (b *Bot) addSuggestedProducts(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	pending := b.sessions.TakePending(userID)
	if len(pending) == 0 {
		b.answerCallback(query.ID, "Предложения устарели, спросите AI ещё раз")
		return
	}

	ctx, cancel := handlerContext()
	defer cancel()

	listID, err := b.repo.GetOrCreateList(ctx, userID, shopping.DefaultListName)
	if err != nil {
		log.Printf("Failed to load list for user %d: %v", userID, err)
		b.answerCallback(query.ID, "Ошибка загрузки списка")
		return
	}

	items := make([]shopping.Item, 0, len(pending))
	for _, s := range pending {
		items = append(items, shopping.Item{Name: s.Name, Quantity: s.Quantity})
	}
	added, err := b.repo.AddProducts(ctx, listID, items)
	if err != nil {
		log.Printf("Failed to add suggested products for user %d: %v", userID, err)
		b.answerCallback(query.ID, "Ошибка сохранения")
		return
	}
	b.answerCallback(query.ID, fmt.Sprintf("Добавлено товаров: %d", added))

	products, err := b.repo.Products(ctx, listID)
	if err != nil {
		log.Printf("Failed to load products for user %d: %v", userID, err)
		return
	}
	kb := listActionsKeyboard(len(products) > 0)
	b.edit(query.Message.Chat.ID, query.Message.MessageID, formatProductList(products), &kb)
}
