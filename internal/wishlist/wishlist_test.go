package wishlist

import (
	"testing"

	"family-meal-planner/internal/recipe"
)

func TestWishList(t *testing.T) {
	list := Add(nil, Item{ID: "w1", UserID: "u_kid", DishName: "Chocolate Lava Cake", MealType: recipe.Snack})
	list = Add(list, Item{ID: "w2", UserID: "u_dad", DishName: "Steak Night", MealType: recipe.Dinner, Notes: "Medium rare"})

	if got := ForUser(list, "u_dad"); len(got) != 1 || got[0].ID != "w2" {
		t.Errorf("Expected one wish for u_dad, got %+v", got)
	}

	if w, ok := Find(list, "w1"); !ok || w.DishName != "Chocolate Lava Cake" {
		t.Errorf("Expected to find w1, got %+v", w)
	}

	list = Remove(list, "w1")
	list = Remove(list, "w1")
	if len(list) != 1 || list[0].ID != "w2" {
		t.Errorf("Expected only w2 left, got %+v", list)
	}
}
