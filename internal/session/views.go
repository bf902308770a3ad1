package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// Deck is the two-card swipe stack: the visible card, the one behind it, and
// how many candidates remain in total.
type Deck struct {
	Current   *domain.Recipe
	Next      *domain.Recipe
	Remaining int
}

// CollectionTab selects one view of the recipe collection.
type CollectionTab string

const (
	TabAll       CollectionTab = "all"
	TabMine      CollectionTab = "mine"
	TabHousehold CollectionTab = "household"
	TabFavorites CollectionTab = "favorites"
)

// SwipeDeck derives the swipe candidates: recipes not yet swiped this
// session, not owned by the viewer, matching the meal type filter. Order is
// the collection's natural newest-first order.
func (s *Store) SwipeDeck(filter domain.MealType) Deck {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(s.rejected)+len(s.liked))
	for id := range s.rejected {
		seen[id] = struct{}{}
	}
	for _, r := range s.liked {
		seen[r.ID] = struct{}{}
	}

	var candidates []*domain.Recipe
	for _, r := range s.list {
		if _, swiped := seen[r.ID]; swiped {
			continue
		}
		if r.OwnerID == s.userID {
			continue
		}
		if filter != "" && filter != domain.MealTypeAll && r.MealType != filter {
			continue
		}
		candidates = append(candidates, r)
	}

	deck := Deck{Remaining: len(candidates)}
	if len(candidates) > 0 {
		deck.Current = candidates[0]
	}
	if len(candidates) > 1 {
		deck.Next = candidates[1]
	}
	return deck
}

// Collection derives one tab of the recipe collection. The all tab is the
// union of owned and liked recipes, deduplicated, first-seen order kept.
func (s *Store) Collection(tab CollectionTab) []*domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch tab {
	case TabMine:
		return filterRecipes(s.list, func(r *domain.Recipe) bool { return r.OwnerID == s.userID })
	case TabHousehold:
		return filterRecipes(s.list, func(r *domain.Recipe) bool { return r.OwnerID != s.userID })
	case TabFavorites:
		return append([]*domain.Recipe(nil), s.liked...)
	default:
		return s.union()
	}
}

// Search filters the union of owned and liked recipes by a case-insensitive
// substring match on title, description and ingredient names.
func (s *Store) Search(query string) []*domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.union()
	}

	return filterRecipes(s.union(), func(r *domain.Recipe) bool {
		if strings.Contains(strings.ToLower(r.Title), query) {
			return true
		}
		if strings.Contains(strings.ToLower(r.Description), query) {
			return true
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), query) {
				return true
			}
		}
		return false
	})
}

// union merges the main and liked collections, deduplicated by id. Callers
// must hold s.mu.
func (s *Store) union() []*domain.Recipe {
	seen := make(map[uuid.UUID]struct{}, len(s.list)+len(s.liked))
	out := make([]*domain.Recipe, 0, len(s.list)+len(s.liked))

	for _, r := range s.list {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	for _, r := range s.liked {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func filterRecipes(list []*domain.Recipe, keep func(*domain.Recipe) bool) []*domain.Recipe {
	var out []*domain.Recipe
	for _, r := range list {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
