package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	itemsPerPage = 12
	itemsPerRow  = 3
)

// callback data
const (
	cbShowTop1      = "show_top_1"
	cbShowTop3      = "show_top_3"
	cbShowAssets    = "show_assets"
	cbShowChains    = "show_chains"
	cbFeedback      = "feedback"
	cbBackToMain    = "back_to_main"
	cbShowMenu      = "show_menu"
	cbShowAnalytics = "show_analytics"

	pfxAssetPage = "page_"
	pfxAsset     = "asset_"
	pfxChainPage = "chains_page_"
	pfxChain     = "chain_"
)

type pageNav struct {
	pfxItem string
	pfxPage string
	prev    string
	next    string
}

var (
	assetNav = pageNav{pfxItem: pfxAsset, pfxPage: pfxAssetPage, prev: "⬅️ Previous", next: "Next ➡️"}
	chainNav = pageNav{pfxItem: pfxChain, pfxPage: pfxChainPage, prev: "◀️ Prev", next: "Next ▶️"}
)

func btn(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

// pagedKeyboard lays out one page of items, itemsPerRow per row, followed by the navigation row
func pagedKeyboard(items []string, page int, nav pageNav) tgbotapi.InlineKeyboardMarkup {
	// out of range pages show the last page
	lastPage := 0
	if len(items) > 0 {
		lastPage = (len(items) - 1) / itemsPerPage
	}
	if page < 0 {
		page = 0
	}
	if page > lastPage {
		page = lastPage
	}
	start := page * itemsPerPage
	end := start + itemsPerPage
	if end > len(items) {
		end = len(items)
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, item := range items[start:end] {
		row = append(row, btn(item, nav.pfxItem+item))
		if len(row) == itemsPerRow {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	navRow := []tgbotapi.InlineKeyboardButton{}
	if page > 0 {
		navRow = append(navRow, btn(nav.prev, nav.pfxPage+strconv.Itoa(page-1)))
	}
	navRow = append(navRow, btn("Back", cbBackToMain))
	if end < len(items) {
		navRow = append(navRow, btn(nav.next, nav.pfxPage+strconv.Itoa(page+1)))
	}
	rows = append(rows, navRow)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func mainMenu(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(btn("🥇 TOP-1", cbShowTop1)),
		tgbotapi.NewInlineKeyboardRow(btn("🥉 TOP-3", cbShowTop3)),
		tgbotapi.NewInlineKeyboardRow(btn("💲 Select Assets", cbShowAssets)),
		tgbotapi.NewInlineKeyboardRow(btn("🔗 Select Chains", cbShowChains)),
		tgbotapi.NewInlineKeyboardRow(btn("💻 Request Feature", cbFeedback)),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn("Analytics", cbShowAnalytics)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("Back to Menu", cbBackToMain)),
	)
}

func backTo(text, data, menuText string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn(text, data)),
		tgbotapi.NewInlineKeyboardRow(btn(menuText, cbBackToMain)),
	)
}

// DigestKeyboard is attached to the daily digest
func DigestKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("Open Main Menu", cbShowMenu)),
	)
}

// parsePage reads the page number after pfx, anything invalid is page 0
func parsePage(data, pfx string) int {
	n, err := strconv.Atoi(data[len(pfx):])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
