package testhelper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user row and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:    uuid.New(),
		Email: "testuser-" + suffix + "@example.com",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (id, email) VALUES ($1, $2) RETURNING created_at`,
		user.ID, user.Email,
	).Scan(&user.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedRecipe inserts a minimal valid recipe owned by ownerID and returns it.
func SeedRecipe(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Recipe {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	recipe := domain.Recipe{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       "Recipe " + suffix,
		Description: "Seeded recipe",
		MealType:    domain.MealTypeDinner,
		Ingredients: []domain.Ingredient{{ID: "1", Name: "Ingredient " + suffix, Quantity: "1", Unit: "pc"}},
		Equipment:   []string{},
		Steps:       []string{"Cook it"},
		PrepTime:    10,
		CookTime:    20,
		Servings:    2,
		Difficulty:  domain.DifficultyEasy,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO recipes (id, user_id, title, description, meal_type, difficulty,
		                      prep_time, cook_time, servings, ingredients, steps)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		         '[{"id":"1","name":"Ingredient `+suffix+`","quantity":"1","unit":"pc"}]',
		         '["Cook it"]')
		 RETURNING created_at, updated_at`,
		recipe.ID, recipe.OwnerID, recipe.Title, recipe.Description,
		recipe.MealType.String(), recipe.Difficulty.String(),
		recipe.PrepTime, recipe.CookTime, recipe.Servings,
	).Scan(&recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipe insert recipe: %v", err)
	}

	return recipe
}

// SeedHousehold inserts a household owned by ownerID, with the owner attached
// as its first member. Returns the household.
func SeedHousehold(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Household {
	t.Helper()
	ctx := context.Background()

	suffix := strings.ToUpper(uniqueSuffix()[:domain.HouseholdCodeLength])
	h := domain.Household{
		ID:        uuid.New(),
		Name:      "Household " + suffix,
		Code:      suffix,
		CreatedBy: ownerID,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO households (id, name, code, created_by)
		 VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`,
		h.ID, h.Name, h.Code, h.CreatedBy,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedHousehold insert household: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO household_members (id, household_id, user_id, role)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), h.ID, ownerID, domain.HouseholdRoleOwner.String(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHousehold insert owner member: %v", err)
	}

	return h
}

// SeedSettings inserts a default settings row for the user and returns it.
func SeedSettings(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.UserSettings {
	t.Helper()
	ctx := context.Background()

	s := domain.DefaultUserSettings(userID)
	s.ID = uuid.New()

	err := pool.QueryRow(ctx,
		`INSERT INTO user_settings (id, user_id, show_breakfast, show_lunch, show_dinner, show_snack)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`,
		s.ID, s.UserID, s.ShowBreakfast, s.ShowLunch, s.ShowDinner, s.ShowSnack,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSettings insert user_settings: %v", err)
	}

	return s
}

// SeedPlannedMeal assigns recipeID to the (date, slot) pair for userID.
func SeedPlannedMeal(t *testing.T, pool *pgxpool.Pool, userID, recipeID uuid.UUID, date string, slot domain.MealSlot) domain.PlannedMeal {
	t.Helper()
	ctx := context.Background()

	m := domain.PlannedMeal{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Date:     date,
		Slot:     slot,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO meal_plans (id, user_id, recipe_id, planned_date, meal_type)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		m.ID, m.UserID, m.RecipeID, m.Date, m.Slot.String(),
	).Scan(&m.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedPlannedMeal insert meal_plan: %v", err)
	}

	return m
}

// Today returns the current UTC date in the planner's date layout.
func Today() string {
	return time.Now().UTC().Format(domain.PlanDateLayout)
}
