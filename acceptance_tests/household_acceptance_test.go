package acceptance_tests

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"family-meal-planner/internal/app"
	"family-meal-planner/internal/chef"
	"family-meal-planner/internal/database"
	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/metrics"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
	"family-meal-planner/internal/shared"
	"family-meal-planner/internal/storage"
	"family-meal-planner/internal/storage/sqlite"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	mu                   sync.Mutex
	generateContentCalls int
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string, opts ...llm.Option) (llm.ContentResponse, error) {
	m.mu.Lock()
	m.generateContentCalls++
	m.mu.Unlock()

	usage := shared.TokenUsage{PromptTokens: 100, CompletionTokens: 20, Model: "mock"}
	if strings.Contains(prompt, "suggest") {
		return llm.ContentResponse{
			Content: `{"suggestions": ["roast chicken", "Tofu Surprise", "Pancakes"], "reasoning": "You have eggs."}`,
			Usage:   usage,
		}, nil
	}
	return llm.ContentResponse{}, errors.New("model overloaded")
}

// --- Mock Notifier ---
type mockNotifier struct {
	menus []string
}

func (m *mockNotifier) AnnounceMenu(_ context.Context, r *room.Room, date string) error {
	names := make([]string, 0)
	for _, rec := range r.Plan(date).FinalizedRecipes {
		names = append(names, rec.Name)
	}
	m.menus = append(m.menus, strings.Join(names, ", "))
	return nil
}

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()

	// 1. Real database, store and metrics
	db, err := database.NewDB(filepath.Join(tempDir, "rooms.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	store := sqlite.New(db.SQL)
	defer store.Close()
	metricsStore := metrics.NewStore(db.SQL)

	// 2. Gateway on top of the mock model
	llmClient := &mockLLMClient{}
	gateway := chef.New(llmClient, chef.WithRecorder(metrics.NewRecorder(metricsStore, nil)))
	notifier := &mockNotifier{}
	application := app.NewApp(store, session.NewManager("acceptance", time.Hour),
		app.WithGateway(gateway), app.WithNotifier(notifier))

	// 3. Household setup
	created, err := application.CreateRoom(ctx, app.CreateRoomInput{Name: "Smiths", Password: "pw1", WithDefaults: true})
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if _, err := application.CreateRoom(ctx, app.CreateRoomInput{Name: "Smiths", Password: "anything"}); !errors.Is(err, room.ErrConflict) {
		t.Fatalf("Expected ErrConflict for duplicate room, got %v", err)
	}
	if _, err := application.EnterRoom(ctx, "Smiths", "wrong"); !errors.Is(err, room.ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
	entered, err := application.EnterRoom(ctx, "Smiths", "pw1")
	if err != nil || entered.ID != created.ID {
		t.Fatalf("EnterRoom failed: %v", err)
	}

	momSession, err := application.Login(ctx, created.ID, "u_mom", "123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	mom, _, err := application.Authenticate(ctx, momSession.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	dad := session.Actor{RoomID: created.ID, UserID: "u_dad"}
	kid := session.Actor{RoomID: created.ID, UserID: "u_kid"}

	// 4. Suggestions are restricted to the cookbook
	sugg, err := application.Suggest(ctx, kid, "cookbook", "")
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(sugg.Suggestions) != 2 || sugg.Suggestions[0] != "Roast Chicken" || sugg.Suggestions[1] != "Pancakes" {
		t.Errorf("Expected cookbook-only suggestions, got %v", sugg.Suggestions)
	}

	// 5. Failed AI calls degrade to fallbacks
	if reply, _ := application.Chat(ctx, dad, "What's for dinner?", nil); reply != chef.FallbackChat {
		t.Errorf("Expected fallback chat reply, got %q", reply)
	}

	// 6. Propose, vote and finalize
	date := "2024-06-02"
	for _, id := range []string{"5", "6"} {
		if _, err := application.ToggleProposal(ctx, mom, date, id); err != nil {
			t.Fatalf("ToggleProposal(%s) failed: %v", id, err)
		}
	}
	for _, actor := range []session.Actor{dad, kid} {
		if _, err := application.CastVote(ctx, actor, date, "5"); err != nil {
			t.Fatalf("CastVote failed: %v", err)
		}
	}
	if _, err := application.CastVote(ctx, kid, date, "6"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	view, err := application.FinalizePlan(ctx, mom, date, nil)
	if err != nil {
		t.Fatalf("FinalizePlan failed: %v", err)
	}
	if len(view.Plan.FinalizedRecipes) != 2 {
		t.Errorf("Expected a tie between two recipes, got %+v", view.Plan.FinalizedRecipes)
	}
	if len(notifier.menus) != 1 || notifier.menus[0] != "Spaghetti Bolognese, Roast Chicken" {
		t.Errorf("Unexpected announcements %v", notifier.menus)
	}

	// 7. Concurrent edits of different fields both survive
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := application.AddShoppingItem(gctx, dad, "Charcoal", "1 bag")
		return err
	})
	g.Go(func() error {
		_, err := application.AddIngredient(gctx, mom, "Eggs", "12")
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("Concurrent edits failed: %v", err)
	}

	final, err := application.GetRoom(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(final.ShoppingList) != 5 || len(final.Inventory) != 1 {
		t.Errorf("Expected both edits to survive, got %d items and %d ingredients", len(final.ShoppingList), len(final.Inventory))
	}
	if got := final.Plan(date).Status(); got != "FINAL" {
		t.Errorf("Expected finalized plan to persist, got %s", got)
	}

	// 8. Every AI call was recorded
	usage, err := metricsStore.GetDailyUsage(ctx, 1)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	calls, fallbacks := 0, 0
	for _, u := range usage {
		calls += u.TotalCalls
		fallbacks += u.Fallbacks
	}
	if calls != llmClient.generateContentCalls || fallbacks != 1 {
		t.Errorf("Expected %d recorded calls with one fallback, got %+v", llmClient.generateContentCalls, usage)
	}

	// 9. Export and re-import into a fresh store
	snapshots, err := storage.NewSnapshotStore(filepath.Join(tempDir, "snapshots"))
	if err != nil {
		t.Fatal(err)
	}
	path, err := application.ExportRoom(ctx, created.ID, snapshots)
	if err != nil {
		t.Fatalf("ExportRoom failed: %v", err)
	}
	otherDB, err := database.NewDB(filepath.Join(tempDir, "other.db"))
	if err != nil {
		t.Fatal(err)
	}
	otherStore := sqlite.New(otherDB.SQL)
	defer otherStore.Close()
	imported, err := app.NewApp(otherStore, session.NewManager("acceptance", time.Hour)).ImportRoom(ctx, path)
	if err != nil {
		t.Fatalf("ImportRoom failed: %v", err)
	}
	exported, err := application.GetRoom(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(exported, imported); diff != "" {
		t.Errorf("Imported room differs (-exported +imported):\n%s", diff)
	}
}
