package shopping

// Every function here treats its input as read-only and returns a fresh
// slice, so callers can write the result back as a whole collection.

// Add returns a copy of list with item appended.
func Add(list []Item, item Item) []Item {
	out := make([]Item, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// Remove returns a copy of list without the item with the given id.
func Remove(list []Item, id string) []Item {
	out := make([]Item, 0, len(list))
	for _, it := range list {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// ToggleBought flips the bought flag of one item.
func ToggleBought(list []Item, id string) ([]Item, error) {
	return update(list, id, func(it *Item) { it.IsBought = !it.IsBought })
}

// Assign sets who is responsible for buying an item. An empty userID
// clears the assignment.
func Assign(list []Item, id, userID string) ([]Item, error) {
	return update(list, id, func(it *Item) { it.AssignedTo = userID })
}

// ClearBought drops every bought item and keeps the rest in order.
func ClearBought(list []Item) []Item {
	out := make([]Item, 0, len(list))
	for _, it := range list {
		if !it.IsBought {
			out = append(out, it)
		}
	}
	return out
}

// AssignedTo returns the items a user is responsible for.
func AssignedTo(list []Item, userID string) []Item {
	out := []Item{}
	for _, it := range list {
		if it.AssignedTo == userID {
			out = append(out, it)
		}
	}
	return out
}

func update(list []Item, id string, fn func(*Item)) ([]Item, error) {
	out := make([]Item, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			return out, nil
		}
	}
	return nil, ErrItemNotFound
}
