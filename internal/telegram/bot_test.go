package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/shopping"
)

type mockSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m.err != nil {
		return tgbotapi.Message{}, m.err
	}
	m.sent = append(m.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func finalizedPlan() planner.DailyPlan {
	roast := recipe.Recipe{ID: "6", Name: "Roast Chicken", Type: recipe.Dinner, IsSpecial: true, Description: "Sunday special roast"}
	p := planner.Empty("2024-05-05").Propose(roast)
	p, _ = p.CastVote("u_kid", "6")
	p, _ = p.Finalize(nil)
	return p
}

func TestFormatMenuMarkdownParts(t *testing.T) {
	users := []room.User{{ID: "u_mom", Name: "Mom", Role: room.RoleHomemaker}, {ID: "u_dad", Name: "Dad", Role: room.RoleMember}}
	list := []shopping.Item{
		{ID: "s1", Name: "Milk", Quantity: "1 gallon"},
		{ID: "s2", Name: "Eggs", Quantity: "1 dozen", AssignedTo: "u_dad"},
		{ID: "s3", Name: "Bread", Quantity: "2 loaves", IsBought: true, AssignedTo: "u_dad"},
		{ID: "s4", Name: "Apples", Quantity: "6", AssignedTo: "u_gone"},
	}
	menu, shoppingOutput := formatMenuMarkdownParts("Smiths", finalizedPlan(), list, users)

	if !strings.Contains(menu, "📅 *Menu for 2024-05-05* (Smiths)") {
		t.Errorf("Missing menu header: %s", menu)
	}
	if !strings.Contains(menu, "🍽 *Roast Chicken* (dinner) ⭐") {
		t.Error("Missing finalized recipe or special marker")
	}
	if !strings.Contains(menu, "_Sunday special roast_") {
		t.Error("Missing description")
	}
	if !strings.Contains(menu, "🗳 1 votes cast") {
		t.Error("Missing vote count")
	}
	if !strings.Contains(shoppingOutput, "🛒 *Shopping List*") || !strings.Contains(shoppingOutput, "• Milk (1 gallon)") {
		t.Errorf("Missing shopping list: %s", shoppingOutput)
	}
	if strings.Contains(shoppingOutput, "Bread") {
		t.Error("Expected bought items to be left out")
	}
	if strings.Contains(shoppingOutput, "*Mom*") {
		t.Error("Expected no section for a member with nothing pending")
	}
	dad := strings.Index(shoppingOutput, "*Dad*\n• Eggs (1 dozen)")
	anyone := strings.Index(shoppingOutput, "*Anyone*\n• Milk (1 gallon)\n• Apples (6)")
	if dad < 0 || anyone < 0 || dad > anyone {
		t.Errorf("Expected Dad's items before the unassigned ones: %s", shoppingOutput)
	}

	_, empty := formatMenuMarkdownParts("Smiths", finalizedPlan(), nil, users)
	if empty != "" {
		t.Errorf("Expected no shopping message, got %q", empty)
	}
}

func TestAnnounceMenu(t *testing.T) {
	r, _ := room.New("Smiths", "pw1", room.Starter())
	r.DailyPlans = planner.Put(r.DailyPlans, finalizedPlan())

	t.Run("SendsMenuAndShoppingList", func(t *testing.T) {
		m := &mockSender{}
		n := &Notifier{api: m, chatID: 42}
		if err := n.AnnounceMenu(context.Background(), r, "2024-05-05"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(m.sent) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(m.sent))
		}
		if m.sent[0].ChatID != 42 || m.sent[0].ParseMode != tgbotapi.ModeMarkdown {
			t.Errorf("Unexpected message config %+v", m.sent[0])
		}
	})

	t.Run("SendFailure", func(t *testing.T) {
		n := &Notifier{api: &mockSender{err: errors.New("boom")}, chatID: 42}
		if err := n.AnnounceMenu(context.Background(), r, "2024-05-05"); err == nil {
			t.Error("Expected an error")
		}
	})
}
