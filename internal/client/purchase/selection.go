package purchase

import "github.com/dmitrijs2005/storefront/internal/client/models"

// Selection is an ordered set of services, unique by id.
type Selection struct {
	items []models.Service
}

// Add appends s unless a service with the same id is already selected.
// It reports whether s was added.
func (sel *Selection) Add(s models.Service) bool {
	if sel.Contains(s.ID) {
		return false
	}
	sel.items = append(sel.items, s)
	return true
}

// Remove drops the service with the given id, keeping the order of the rest.
func (sel *Selection) Remove(id int64) bool {
	for i, it := range sel.items {
		if it.ID == id {
			sel.items = append(sel.items[:i], sel.items[i+1:]...)
			return true
		}
	}
	return false
}

func (sel *Selection) Contains(id int64) bool {
	for _, it := range sel.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the selected services in insertion order.
func (sel *Selection) Items() []models.Service {
	out := make([]models.Service, len(sel.items))
	copy(out, sel.items)
	return out
}

func (sel *Selection) Len() int { return len(sel.items) }

func (sel *Selection) Clear() { sel.items = nil }
