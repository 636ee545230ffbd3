// Package telegram announces finalized household menus to a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/shopping"
)

// sender is the part of tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts messages to one chat.
type Notifier struct {
	api    sender
	chatID int64
}

// NewNotifier authorizes the bot token against the Telegram API.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	slog.Info("telegram authorized", "account", bot.Self.UserName, "chat_id", chatID)
	return &Notifier{api: bot, chatID: chatID}, nil
}

// AnnounceMenu sends the finalized menu of date, followed by what is
// still on the shopping list.
func (n *Notifier) AnnounceMenu(ctx context.Context, r *room.Room, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	menu, shoppingText := formatMenuMarkdownParts(r.Name, r.Plan(date), r.ShoppingList, r.Users)

	for _, text := range []string{menu, shoppingText} {
		if text == "" {
			continue
		}
		msg := tgbotapi.NewMessage(n.chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	return nil
}

func formatMenuMarkdownParts(roomName string, plan planner.DailyPlan, list []shopping.Item, users []room.User) (string, string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Menu for %s* (%s)\n\n", escape(plan.Date), escape(roomName)))
	for _, rc := range plan.FinalizedRecipes {
		sb.WriteString(fmt.Sprintf("🍽 *%s* (%s)", escape(rc.Name), rc.Type))
		if rc.IsSpecial {
			sb.WriteString(" ⭐")
		}
		sb.WriteString("\n")
		if rc.Description != "" {
			sb.WriteString(fmt.Sprintf("_%s_\n", escape(rc.Description)))
		}
	}
	sb.WriteString(fmt.Sprintf("\n🗳 %d votes cast", len(plan.Votes)))

	var sections []string
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.ID] = true
		if lines := pendingLines(shopping.AssignedTo(list, u.ID)); len(lines) > 0 {
			sections = append(sections, fmt.Sprintf("*%s*\n%s", escape(u.Name), strings.Join(lines, "\n")))
		}
	}
	var unassigned []shopping.Item
	for _, item := range list {
		if !known[item.AssignedTo] {
			unassigned = append(unassigned, item)
		}
	}
	if lines := pendingLines(unassigned); len(lines) > 0 {
		sections = append(sections, "*Anyone*\n"+strings.Join(lines, "\n"))
	}
	if len(sections) == 0 {
		return sb.String(), ""
	}
	return sb.String(), "🛒 *Shopping List*\n\n" + strings.Join(sections, "\n\n")
}

func pendingLines(items []shopping.Item) []string {
	var lines []string
	for _, item := range items {
		if !item.IsBought {
			lines = append(lines, fmt.Sprintf("• %s (%s)", escape(item.Name), escape(item.Quantity)))
		}
	}
	return lines
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
