package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/mealplan"
)

// PlannedEntry is one planner assignment as the UI consumes it: the full
// recipe, not just its id.
type PlannedEntry struct {
	Date   string
	Slot   domain.MealSlot
	Recipe *domain.Recipe
}

// planIndex maps (date, slot) pairs to one recipe each. A pair holds at most
// one entry; upserting an occupied pair replaces it.
type planIndex struct {
	entries []PlannedEntry
}

func (p *planIndex) Upsert(date string, slot domain.MealSlot, rec *domain.Recipe) {
	p.Remove(date, slot)
	p.entries = append(p.entries, PlannedEntry{Date: date, Slot: slot, Recipe: rec})
}

func (p *planIndex) Remove(date string, slot domain.MealSlot) {
	out := p.entries[:0]
	for _, e := range p.entries {
		if e.Date != date || e.Slot != slot {
			out = append(out, e)
		}
	}
	p.entries = out
}

func (p *planIndex) RemoveRecipe(recipeID uuid.UUID) {
	out := p.entries[:0]
	for _, e := range p.entries {
		if e.Recipe == nil || e.Recipe.ID != recipeID {
			out = append(out, e)
		}
	}
	p.entries = out
}

func (p *planIndex) ForDate(date string) []PlannedEntry {
	var out []PlannedEntry
	for _, e := range p.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// PlanMeal assigns a recipe to a (date, slot) pair. With a planner gateway
// configured the remote write happens first and the index mirrors it; without
// one the assignment is purely local.
func (s *Store) PlanMeal(ctx context.Context, date string, slot domain.MealSlot, rec *domain.Recipe) error {
	if rec == nil {
		return domain.NewValidationError("recipe", "required")
	}
	if err := domain.ValidatePlanDate(date); err != nil {
		return err
	}
	if !slot.IsValid() {
		return domain.NewValidationError("slot", "must be breakfast, lunch, dinner or snack")
	}

	key := fmt.Sprintf("plan:%s:%s", date, slot)
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if s.planner != nil {
		_, err := s.planner.PlanMeal(ctx, mealplan.PlanMealInput{
			RecipeID: rec.ID,
			Date:     date,
			Slot:     slot,
		})
		if err != nil {
			return fmt.Errorf("plan meal: %w", err)
		}
	}

	s.mu.Lock()
	s.plan.Upsert(date, slot, rec)
	s.mu.Unlock()

	return nil
}

// RemovePlannedMeal clears a (date, slot) pair. A pair the remote side
// already considers empty is still cleared locally.
func (s *Store) RemovePlannedMeal(ctx context.Context, date string, slot domain.MealSlot) error {
	if err := domain.ValidatePlanDate(date); err != nil {
		return err
	}
	if !slot.IsValid() {
		return domain.NewValidationError("slot", "must be breakfast, lunch, dinner or snack")
	}

	key := fmt.Sprintf("plan:%s:%s", date, slot)
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if s.planner != nil {
		err := s.planner.RemoveMeal(ctx, mealplan.SlotRef{Date: date, Slot: slot})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("remove planned meal: %w", err)
		}
	}

	s.mu.Lock()
	s.plan.Remove(date, slot)
	s.mu.Unlock()

	return nil
}

// PlannedMealsForDate returns the assignments of one day.
func (s *Store) PlannedMealsForDate(date string) []PlannedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.ForDate(date)
}
