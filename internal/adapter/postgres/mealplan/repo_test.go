package mealplan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tboivin/swipemeal-backend/internal/adapter/postgres/mealplan"
	"github.com/tboivin/swipemeal-backend/internal/adapter/postgres/testhelper"
	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*mealplan.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return mealplan.New(pool), pool
}

func TestRepo_Upsert_NewSlot(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	rec := testhelper.SeedRecipe(t, pool, user.ID)

	meal, err := repo.Upsert(ctx, &domain.PlannedMeal{
		ID:       uuid.New(),
		UserID:   user.ID,
		RecipeID: rec.ID,
		Date:     "2026-09-01",
		Slot:     domain.MealSlotDinner,
	})
	if err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}
	if meal.Date != "2026-09-01" {
		t.Errorf("Date mismatch: got %q", meal.Date)
	}
	if meal.Slot != domain.MealSlotDinner {
		t.Errorf("Slot mismatch: got %q", meal.Slot)
	}
	if meal.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestRepo_Upsert_ReplacesOccupiedSlot(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	first := testhelper.SeedRecipe(t, pool, user.ID)
	second := testhelper.SeedRecipe(t, pool, user.ID)

	original := testhelper.SeedPlannedMeal(t, pool, user.ID, first.ID, "2026-09-02", domain.MealSlotLunch)

	replaced, err := repo.Upsert(ctx, &domain.PlannedMeal{
		ID:       uuid.New(),
		UserID:   user.ID,
		RecipeID: second.ID,
		Date:     "2026-09-02",
		Slot:     domain.MealSlotLunch,
	})
	if err != nil {
		t.Fatalf("Upsert over occupied slot: unexpected error: %v", err)
	}

	// The row keeps its identity; only the assignment changes.
	if replaced.ID != original.ID {
		t.Errorf("expected slot row to be reused: got %s, want %s", replaced.ID, original.ID)
	}
	if replaced.RecipeID != second.ID {
		t.Errorf("RecipeID not replaced: got %s, want %s", replaced.RecipeID, second.ID)
	}

	meals, err := repo.ListForDate(ctx, user.ID, "2026-09-02")
	if err != nil {
		t.Fatalf("ListForDate: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected exactly one meal in the slot, got %d", len(meals))
	}
}

func TestRepo_Upsert_MissingRecipe(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	user := testhelper.SeedUser(t, pool)

	_, err := repo.Upsert(context.Background(), &domain.PlannedMeal{
		ID:       uuid.New(),
		UserID:   user.ID,
		RecipeID: uuid.New(),
		Date:     "2026-09-03",
		Slot:     domain.MealSlotBreakfast,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing recipe, got %v", err)
	}
}

func TestRepo_Remove(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	rec := testhelper.SeedRecipe(t, pool, user.ID)
	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-04", domain.MealSlotSnack)

	if err := repo.Remove(ctx, user.ID, "2026-09-04", domain.MealSlotSnack); err != nil {
		t.Fatalf("Remove: unexpected error: %v", err)
	}

	if err := repo.Remove(ctx, user.ID, "2026-09-04", domain.MealSlotSnack); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty slot, got %v", err)
	}
}

func TestRepo_List_CalendarOrder(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	rec := testhelper.SeedRecipe(t, pool, user.ID)

	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-06", domain.MealSlotDinner)
	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-05", domain.MealSlotBreakfast)
	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-05", domain.MealSlotLunch)

	meals, err := repo.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(meals))
	}
	if meals[0].Date != "2026-09-05" || meals[2].Date != "2026-09-06" {
		t.Errorf("meals out of calendar order: %v, %v, %v", meals[0].Date, meals[1].Date, meals[2].Date)
	}
}

func TestRepo_ListRange(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	rec := testhelper.SeedRecipe(t, pool, user.ID)

	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-07", domain.MealSlotDinner)
	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-14", domain.MealSlotDinner)

	meals, err := repo.ListRange(ctx, user.ID, "2026-09-07", "2026-09-13")
	if err != nil {
		t.Fatalf("ListRange: unexpected error: %v", err)
	}
	if len(meals) != 1 || meals[0].Date != "2026-09-07" {
		t.Errorf("range filter mismatch: got %d meals", len(meals))
	}
}

func TestRepo_DeleteByRecipe(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	rec := testhelper.SeedRecipe(t, pool, user.ID)
	keep := testhelper.SeedRecipe(t, pool, user.ID)

	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-08", domain.MealSlotLunch)
	testhelper.SeedPlannedMeal(t, pool, user.ID, rec.ID, "2026-09-09", domain.MealSlotDinner)
	testhelper.SeedPlannedMeal(t, pool, user.ID, keep.ID, "2026-09-10", domain.MealSlotDinner)

	if err := repo.DeleteByRecipe(ctx, user.ID, rec.ID); err != nil {
		t.Fatalf("DeleteByRecipe: unexpected error: %v", err)
	}
	// Idempotent.
	if err := repo.DeleteByRecipe(ctx, user.ID, rec.ID); err != nil {
		t.Fatalf("DeleteByRecipe twice: unexpected error: %v", err)
	}

	meals, err := repo.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(meals) != 1 || meals[0].RecipeID != keep.ID {
		t.Errorf("expected only the kept recipe's meal, got %d meals", len(meals))
	}
}

func TestRepo_PlansAreUserScoped(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	alice := testhelper.SeedUser(t, pool)
	bob := testhelper.SeedUser(t, pool)
	rec := testhelper.SeedRecipe(t, pool, alice.ID)

	testhelper.SeedPlannedMeal(t, pool, alice.ID, rec.ID, "2026-09-11", domain.MealSlotDinner)

	meals, err := repo.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("expected no meals for other user, got %d", len(meals))
	}

	// Same (date, slot) pair is free for another user.
	if _, err := repo.Upsert(ctx, &domain.PlannedMeal{
		ID: uuid.New(), UserID: bob.ID, RecipeID: rec.ID,
		Date: "2026-09-11", Slot: domain.MealSlotDinner,
	}); err != nil {
		t.Errorf("Upsert for other user: unexpected error: %v", err)
	}
}
