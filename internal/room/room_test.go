package room

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/shopping"
)

func TestNew(t *testing.T) {
	t.Run("SeedsEmptyPantryAndPlans", func(t *testing.T) {
		r, err := New("Smiths", "pw1", Starter())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if r.ID == "" {
			t.Error("Expected an id to be assigned")
		}
		if r.Name != "Smiths" {
			t.Errorf("Expected name Smiths, got %q", r.Name)
		}
		if len(r.Inventory) != 0 || len(r.DailyPlans) != 0 {
			t.Errorf("Expected empty inventory and plans, got %+v %+v", r.Inventory, r.DailyPlans)
		}
		if len(r.Users) != 3 || len(r.Recipes) != 8 || len(r.ShoppingList) != 4 || len(r.WishLists) != 2 {
			t.Errorf("Expected starter collections, got %d users %d recipes", len(r.Users), len(r.Recipes))
		}
	})

	t.Run("NoSeedGivesEmptyCollections", func(t *testing.T) {
		r, err := New("Smiths", "pw1", Seed{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if r.Users == nil || r.Recipes == nil || r.ShoppingList == nil || r.WishLists == nil {
			t.Errorf("Expected non-nil collections, got %+v", r)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		for _, tc := range []struct{ name, password string }{{"", "pw"}, {"Smiths", ""}, {"   ", "pw"}} {
			if _, err := New(tc.name, tc.password, Seed{}); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation for %+v, got %v", tc, err)
			}
		}
	})

	t.Run("NameKeptVerbatim", func(t *testing.T) {
		r, err := New("Smiths ", "pw1", Seed{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if r.Name != "Smiths " {
			t.Errorf("Expected name kept as given, got %q", r.Name)
		}
	})

	t.Run("DuplicateUserIDs", func(t *testing.T) {
		seed := Seed{Users: []User{{ID: "u1", Name: "A", Role: RoleMember}, {ID: "u1", Name: "B", Role: RoleMember}}}
		if _, err := New("Smiths", "pw1", seed); !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
		users := []User{{ID: "u1", Name: "A", Role: RoleMember}, {ID: "u1", Name: "B", Role: RoleMember}}
		if err := (Patch{Users: &users}).Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation from patch, got %v", err)
		}
	})

	t.Run("UnknownRole", func(t *testing.T) {
		seed := Seed{Users: []User{{ID: "u1", Name: "A", Role: "chef"}}}
		if _, err := New("Smiths", "pw1", seed); !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})
}

func TestStarterIsFresh(t *testing.T) {
	a := Starter()
	a.Users[0].Name = "Changed"
	b := Starter()
	if b.Users[0].Name != "Mom" {
		t.Errorf("Expected independent seeds, got %q", b.Users[0].Name)
	}
	if !b.Recipes[5].IsSpecial {
		t.Error("Expected Roast Chicken to be special")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(" Homemaker "); err != nil || r != RoleHomemaker {
		t.Errorf("Expected homemaker, got %q, %v", r, err)
	}
	if _, err := ParseRole("admin"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestUpsertUser(t *testing.T) {
	users := []User{{ID: "u1", Name: "A", Role: RoleMember}, {ID: "u2", Name: "C", Role: RoleMember}}
	users = UpsertUser(users, User{ID: "u1", Name: "B", Role: RoleMember})
	users = UpsertUser(users, User{ID: "u1", Name: "B", Role: RoleHomemaker})
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].Name != "B" || users[0].Role != RoleHomemaker {
		t.Errorf("Expected u1 replaced in place, got %+v", users[0])
	}

	users = UpsertUser(users, User{ID: "u3", Name: "D", Role: RoleMember})
	if len(users) != 3 || users[2].ID != "u3" {
		t.Errorf("Expected u3 appended, got %+v", users)
	}
}

func TestRemoveUser(t *testing.T) {
	users := []User{{ID: "u1"}, {ID: "u2"}}
	users = RemoveUser(users, "u1")
	users = RemoveUser(users, "u1")
	if len(users) != 1 || users[0].ID != "u2" {
		t.Errorf("Expected only u2 left, got %+v", users)
	}
}

func TestNameTaken(t *testing.T) {
	users := []User{{ID: "u1", Name: "Mom"}}
	if !NameTaken(users, " mom") {
		t.Error("Expected case-insensitive match")
	}
	if NameTaken(users, "Dad") {
		t.Error("Expected Dad to be free")
	}
}

func TestVoterNames(t *testing.T) {
	r, _ := New("Smiths", "pw1", Starter())
	stew := recipe.Recipe{ID: "6", Name: "Roast Chicken", Type: recipe.Dinner}
	p := r.Plan("2024-05-01").Propose(stew)
	p, _ = p.CastVote("u_kid", "6")
	p, _ = p.CastVote("u_gone", "6")
	p, _ = p.CastVote("u_mom", "6")
	r.DailyPlans = planner.Put(r.DailyPlans, p)

	if got := r.VoterNames("2024-05-01", "6"); got != "Mom, Kid" {
		t.Errorf("Expected directory order, got %q", got)
	}
	tallies := r.Tallies("2024-05-01")
	if len(tallies) != 1 || tallies[0].Count != 3 || tallies[0].Voters != "Mom, Kid" {
		t.Errorf("Unexpected tallies %+v", tallies)
	}
	if got := r.VoterNames("2030-01-01", "6"); got != "" {
		t.Errorf("Expected nobody on an untouched date, got %q", got)
	}
}

func TestClone(t *testing.T) {
	r, _ := New("Smiths", "pw1", Starter())
	c := r.Clone()
	c.ShoppingList[0].Name = "Oat Milk"
	c.Users[0].Preferences.Breakfast[0] = "Nothing"
	if r.ShoppingList[0].Name != "Milk" || r.Users[0].Preferences.Breakfast[0] != "Toast" {
		t.Error("Expected clone to be independent of the original")
	}
}

func TestPatch(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		list := []shopping.Item{}
		name := "Joneses"
		p := Patch{Name: &name, ShoppingList: &list}
		want := []Field{FieldName, FieldShoppingList}
		if !reflect.DeepEqual(p.Fields(), want) {
			t.Errorf("Expected %v, got %v", want, p.Fields())
		}
		if (Patch{}).Empty() != true {
			t.Error("Expected zero patch to be empty")
		}
	})

	t.Run("ApplyToReplacesOnlyNamedFields", func(t *testing.T) {
		r, _ := New("Smiths", "pw1", Starter())
		before := r.Clone()
		list := []shopping.Item{{ID: "s9", Name: "Rice", Quantity: "1kg", AddedBy: "u_dad"}}
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		Patch{ShoppingList: &list}.ApplyTo(r, now)

		if !reflect.DeepEqual(r.ShoppingList, list) {
			t.Errorf("Expected shopping list replaced, got %+v", r.ShoppingList)
		}
		if !reflect.DeepEqual(r.Users, before.Users) || !reflect.DeepEqual(r.Recipes, before.Recipes) {
			t.Error("Expected other fields untouched")
		}
		if !r.UpdatedAt.Equal(now) {
			t.Errorf("Expected UpdatedAt %v, got %v", now, r.UpdatedAt)
		}
	})

	t.Run("NormalizedFillsNil", func(t *testing.T) {
		var users []User
		plans := map[string]planner.DailyPlan{"2024-05-01": {}}
		p := Patch{Users: &users, DailyPlans: &plans}.Normalized()
		if *p.Users == nil {
			t.Error("Expected empty users slice")
		}
		if (*p.DailyPlans)["2024-05-01"].Date != "2024-05-01" {
			t.Errorf("Expected plan date repaired, got %+v", *p.DailyPlans)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		empty := " "
		bad := map[string]planner.DailyPlan{"yesterday": planner.Empty("yesterday")}
		wrongType := []recipe.Recipe{{ID: "r1", Type: "brunch"}}
		for name, p := range map[string]Patch{
			"BlankName":   {Name: &empty},
			"BadPlanDate": {DailyPlans: &bad},
			"BadMealType": {Recipes: &wrongType},
		} {
			if err := p.Validate(); !errors.Is(err, ErrValidation) {
				t.Errorf("%s: expected ErrValidation, got %v", name, err)
			}
		}
	})
}
