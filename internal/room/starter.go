package room

import (
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/shopping"
	"family-meal-planner/internal/wishlist"
)

// Starter returns the demo household a new room can be seeded with.
// Every call returns fresh slices.
func Starter() Seed {
	return Seed{
		Users: []User{
			{
				ID: "u_mom", Name: "Mom", Role: RoleHomemaker, Password: "123",
				Preferences: &Preferences{
					Breakfast: []string{"Toast", "Coffee", "Fruit Bowl", "Yogurt", "Bagel", "Smoothie"},
					Lunch:     []string{"Salad", "Soup", "Sandwich", "Wrap", "Leftovers", "Sushi"},
					Dinner:    []string{"Salmon", "Steak", "Pasta", "Curry", "Stir Fry", "Pizza"},
				},
			},
			{
				ID: "u_dad", Name: "Dad", Role: RoleMember, Password: "123",
				Preferences: &Preferences{
					Breakfast: []string{"Eggs", "Bacon", "Hashbrowns", "Toast", "Oatmeal", "Waffles"},
					Lunch:     []string{"Burger", "Sandwich", "Pizza", "Tacos", "Burrito", "Sub"},
					Dinner:    []string{"BBQ Ribs", "Steak", "Roast Beef", "Chicken Wings", "Lasagna", "Chili"},
				},
			},
			{
				ID: "u_kid", Name: "Kid", Role: RoleMember, Password: "123",
				Preferences: &Preferences{
					Breakfast: []string{"Cereal", "Pancakes", "Waffles", "Donut", "Pop Tart", "Toast"},
					Lunch:     []string{"Nuggets", "Mac & Cheese", "Hot Dog", "Pizza", "PB&J", "Grilled Cheese"},
					Dinner:    []string{"Spaghetti", "Tacos", "Pizza", "Burger", "Fries", "Chicken Tenders"},
				},
			},
		},
		Recipes: []recipe.Recipe{
			{ID: "1", Name: "Pancakes", Type: recipe.Breakfast, Description: "Fluffy homemade pancakes"},
			{ID: "2", Name: "Oatmeal", Type: recipe.Breakfast, Description: "Healthy oats with fruits"},
			{ID: "3", Name: "Grilled Cheese", Type: recipe.Lunch, Description: "Classic cheese melt"},
			{ID: "4", Name: "Chicken Salad", Type: recipe.Lunch, Description: "Fresh greens with grilled chicken"},
			{ID: "5", Name: "Spaghetti Bolognese", Type: recipe.Dinner, Description: "Pasta with meat sauce"},
			{ID: "6", Name: "Roast Chicken", Type: recipe.Dinner, IsSpecial: true, Description: "Sunday special roast"},
			{ID: "7", Name: "Vegetable Stir Fry", Type: recipe.Dinner, Description: "Mixed veggies with soy sauce"},
			{ID: "8", Name: "Fruit Smoothie", Type: recipe.Snack, Description: "Banana and berry blend"},
		},
		ShoppingList: []shopping.Item{
			{ID: "s1", Name: "Milk", Quantity: "1 gallon", AddedBy: "u_mom", AssignedTo: "u_dad"},
			{ID: "s2", Name: "Eggs", Quantity: "1 dozen", AddedBy: "u_mom", AssignedTo: "u_mom"},
			{ID: "s3", Name: "Bread", Quantity: "2 loaves", IsBought: true, AddedBy: "u_dad", AssignedTo: "u_dad"},
			{ID: "s4", Name: "Apples", Quantity: "6", AddedBy: "u_kid", AssignedTo: "u_mom"},
		},
		WishLists: []wishlist.Item{
			{ID: "w1", UserID: "u_kid", DishName: "Chocolate Lava Cake", MealType: recipe.Snack, Notes: "Please!"},
			{ID: "w2", UserID: "u_dad", DishName: "Steak Night", MealType: recipe.Dinner, Notes: "Medium rare"},
		},
	}
}
