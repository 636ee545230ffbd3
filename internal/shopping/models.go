package shopping

import "errors"

// AddedByHomemaker is the addedBy value for items added from the homemaker's list.
const AddedByHomemaker = "homemaker"

// ErrItemNotFound is returned when an operation names an item that is not on the list.
var ErrItemNotFound = errors.New("item not found")

// Item is an entry on the shared shopping list.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	IsBought   bool   `json:"isBought"`
	AddedBy    string `json:"addedBy"`
	AssignedTo string `json:"assignedTo,omitempty"`
}

// Ingredient is something currently in the pantry.
// Quantity is free text ("2 loaves", "1 gallon").
type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}
