package recipe

import (
	"testing"
)

func TestParseMealType(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		for _, in := range []string{"breakfast", " Lunch ", "DINNER", "snack"} {
			m, err := ParseMealType(in)
			if err != nil {
				t.Fatalf("Expected no error for %q, got %v", in, err)
			}
			if !m.Valid() {
				t.Errorf("Expected %q to be valid", m)
			}
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := ParseMealType("brunch"); err == nil {
			t.Fatal("Expected an error for unknown meal type, got nil")
		}
	})
}

func TestCookbook(t *testing.T) {
	book := []Recipe{
		{ID: "1", Name: "Pancakes", Type: Breakfast},
		{ID: "2", Name: "Oatmeal", Type: Breakfast},
	}

	t.Run("AddDoesNotAlias", func(t *testing.T) {
		added := Add(book[:1], Recipe{ID: "3", Name: "Soup", Type: Lunch})
		if len(added) != 2 || added[1].ID != "3" {
			t.Fatalf("Expected Soup appended, got %+v", added)
		}
		if book[1].ID != "2" {
			t.Errorf("Expected original cookbook untouched, got %+v", book)
		}
	})

	t.Run("RemoveIsIdempotent", func(t *testing.T) {
		once := Remove(book, "1")
		twice := Remove(once, "1")
		if len(once) != 1 || len(twice) != 1 || twice[0].ID != "2" {
			t.Errorf("Expected only Oatmeal left, got %+v", twice)
		}
	})

	t.Run("Find", func(t *testing.T) {
		r, ok := Find(book, "2")
		if !ok || r.Name != "Oatmeal" {
			t.Errorf("Expected Oatmeal, got %+v (found=%v)", r, ok)
		}
		if _, ok := Find(book, "missing"); ok {
			t.Error("Expected missing recipe not to be found")
		}
	})

	t.Run("Names", func(t *testing.T) {
		names := Names(book)
		if len(names) != 2 || names[0] != "Pancakes" || names[1] != "Oatmeal" {
			t.Errorf("Expected [Pancakes Oatmeal], got %v", names)
		}
	})
}
