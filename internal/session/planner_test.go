package session

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/mealplan"
)

func newLocalStore(t *testing.T) *Store {
	t.Helper()
	return newLoadedStore(t, &mockRecipeGateway{}, uuid.New())
}

func TestPlanMeal_SlotExclusive(t *testing.T) {
	t.Parallel()

	s := newLocalStore(t)
	r1 := someRecipe(uuid.New(), "First")
	r2 := someRecipe(uuid.New(), "Second")

	if err := s.PlanMeal(context.Background(), "2024-06-01", domain.MealSlotBreakfast, r1); err != nil {
		t.Fatalf("first plan: %v", err)
	}
	if err := s.PlanMeal(context.Background(), "2024-06-01", domain.MealSlotBreakfast, r2); err != nil {
		t.Fatalf("second plan: %v", err)
	}

	got := s.PlannedMealsForDate("2024-06-01")
	if len(got) != 1 {
		t.Fatalf("slot should hold exactly one entry, got %d", len(got))
	}
	if got[0].Recipe.ID != r2.ID {
		t.Errorf("last write should win: %q", got[0].Recipe.Title)
	}
}

func TestPlanMeal_DistinctSlotsCoexist(t *testing.T) {
	t.Parallel()

	s := newLocalStore(t)
	r := someRecipe(uuid.New(), "Recipe")

	for _, slot := range domain.MealSlots {
		if err := s.PlanMeal(context.Background(), "2024-06-01", slot, r); err != nil {
			t.Fatalf("plan %s: %v", slot, err)
		}
	}

	if got := s.PlannedMealsForDate("2024-06-01"); len(got) != 4 {
		t.Errorf("expected four slots, got %d", len(got))
	}
	if got := s.PlannedMealsForDate("2024-06-02"); len(got) != 0 {
		t.Errorf("other dates should be empty, got %d", len(got))
	}
}

func TestRemovePlannedMeal(t *testing.T) {
	t.Parallel()

	s := newLocalStore(t)
	r := someRecipe(uuid.New(), "Recipe")

	if err := s.PlanMeal(context.Background(), "2024-06-01", domain.MealSlotDinner, r); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if err := s.RemovePlannedMeal(context.Background(), "2024-06-01", domain.MealSlotDinner); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if got := s.PlannedMealsForDate("2024-06-01"); len(got) != 0 {
		t.Errorf("slot should be empty after removal, got %+v", got)
	}
}

func TestPlanMeal_Validation(t *testing.T) {
	t.Parallel()

	s := newLocalStore(t)
	r := someRecipe(uuid.New(), "Recipe")

	if err := s.PlanMeal(context.Background(), "June 1st", domain.MealSlotDinner, r); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for bad date, got %v", err)
	}
	if err := s.PlanMeal(context.Background(), "2024-06-01", "brunch", r); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for bad slot, got %v", err)
	}
	if err := s.PlanMeal(context.Background(), "2024-06-01", domain.MealSlotDinner, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for nil recipe, got %v", err)
	}
}

func TestPlanMeal_RemoteFirst(t *testing.T) {
	t.Parallel()

	var planned *mealplan.PlanMealInput
	gwPlanner := &mockPlannerGateway{
		PlanMealFunc: func(ctx context.Context, input mealplan.PlanMealInput) (*domain.PlannedMeal, error) {
			planned = &input
			return &domain.PlannedMeal{RecipeID: input.RecipeID, Date: input.Date, Slot: input.Slot}, nil
		},
	}

	s := New(slog.Default(), uuid.New(), &mockRecipeGateway{}, gwPlanner)
	r := someRecipe(uuid.New(), "Recipe")

	if err := s.PlanMeal(context.Background(), "2024-06-01", domain.MealSlotLunch, r); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if planned == nil || planned.RecipeID != r.ID {
		t.Errorf("remote planner should receive the assignment: %+v", planned)
	}
	if got := s.PlannedMealsForDate("2024-06-01"); len(got) != 1 {
		t.Errorf("index should mirror the remote write, got %d", len(got))
	}
}

func TestPlanMeal_RemoteFailureLeavesIndexUntouched(t *testing.T) {
	t.Parallel()

	gwPlanner := &mockPlannerGateway{
		PlanMealFunc: func(ctx context.Context, input mealplan.PlanMealInput) (*domain.PlannedMeal, error) {
			return nil, errors.New("backend down")
		},
	}

	s := New(slog.Default(), uuid.New(), &mockRecipeGateway{}, gwPlanner)
	r := someRecipe(uuid.New(), "Recipe")

	if err := s.PlanMeal(context.Background(), "2024-06-01", domain.MealSlotLunch, r); err == nil {
		t.Fatal("expected error")
	}
	if got := s.PlannedMealsForDate("2024-06-01"); len(got) != 0 {
		t.Errorf("failed remote write must not reach the index: %+v", got)
	}
}

func TestRemovePlannedMeal_RemoteNotFoundStillClearsLocally(t *testing.T) {
	t.Parallel()

	gwPlanner := &mockPlannerGateway{
		RemoveMealFunc: func(ctx context.Context, ref mealplan.SlotRef) error {
			return domain.ErrNotFound
		},
	}

	s := New(slog.Default(), uuid.New(), &mockRecipeGateway{}, gwPlanner)
	r := someRecipe(uuid.New(), "Recipe")

	s.mu.Lock()
	s.plan.Upsert("2024-06-01", domain.MealSlotSnack, r)
	s.mu.Unlock()

	if err := s.RemovePlannedMeal(context.Background(), "2024-06-01", domain.MealSlotSnack); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := s.PlannedMealsForDate("2024-06-01"); len(got) != 0 {
		t.Errorf("slot should be cleared locally, got %+v", got)
	}
}
