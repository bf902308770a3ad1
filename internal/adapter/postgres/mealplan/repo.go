// Package mealplan implements the PlannedMeal repository using PostgreSQL.
// The (user_id, planned_date, meal_type) unique constraint is the planner's
// core invariant: upserting an occupied slot replaces the prior assignment.
package mealplan

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tboivin/swipemeal-backend/internal/adapter/postgres"
	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// Repo provides planned meal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new meal plan repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const plannedMealColumns = `id, user_id, recipe_id, planned_date::text, meal_type, created_at`

const upsertSQL = `
INSERT INTO meal_plans (id, user_id, recipe_id, planned_date, meal_type)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, planned_date, meal_type)
DO UPDATE SET recipe_id = EXCLUDED.recipe_id, created_at = now()
RETURNING ` + plannedMealColumns

// Upsert assigns a recipe to a (date, slot) pair, replacing whatever was
// there. Returns domain.ErrNotFound if the recipe does not exist.
func (r *Repo) Upsert(ctx context.Context, m *domain.PlannedMeal) (*domain.PlannedMeal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, upsertSQL, m.ID, m.UserID, m.RecipeID, m.Date, m.Slot.String())

	meal, err := scanPlannedMeal(row)
	if err != nil {
		return nil, postgres.MapError(err, "meal_plan", m.ID)
	}

	return meal, nil
}

const removeSQL = `
DELETE FROM meal_plans
WHERE user_id = $1 AND planned_date = $2 AND meal_type = $3`

// Remove clears a (date, slot) pair. Returns domain.ErrNotFound if the slot
// was already empty.
func (r *Repo) Remove(ctx context.Context, userID uuid.UUID, date string, slot domain.MealSlot) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, removeSQL, userID, date, slot.String())
	if err != nil {
		return postgres.MapError(err, "meal_plan", userID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meal_plan %s %s: %w", date, slot, domain.ErrNotFound)
	}

	return nil
}

const listForDateSQL = `
SELECT ` + plannedMealColumns + `
FROM meal_plans
WHERE user_id = $1 AND planned_date = $2
ORDER BY meal_type`

// ListForDate returns the planned meals for one calendar day.
func (r *Repo) ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]*domain.PlannedMeal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listForDateSQL, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list planned meals for date: %w", err)
	}
	defer rows.Close()

	return scanPlannedMeals(rows)
}

const listSQL = `
SELECT ` + plannedMealColumns + `
FROM meal_plans
WHERE user_id = $1
ORDER BY planned_date, meal_type`

// List returns all of a user's planned meals in calendar order.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.PlannedMeal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list planned meals: %w", err)
	}
	defer rows.Close()

	return scanPlannedMeals(rows)
}

const listRangeSQL = `
SELECT ` + plannedMealColumns + `
FROM meal_plans
WHERE user_id = $1 AND planned_date BETWEEN $2 AND $3
ORDER BY planned_date, meal_type`

// ListRange returns the planned meals between two dates inclusive.
func (r *Repo) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.PlannedMeal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRangeSQL, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list planned meals in range: %w", err)
	}
	defer rows.Close()

	return scanPlannedMeals(rows)
}

const deleteByRecipeSQL = `DELETE FROM meal_plans WHERE user_id = $1 AND recipe_id = $2`

// DeleteByRecipe clears every slot a recipe occupies for one user.
// Idempotent. Used when the recipe itself goes away.
func (r *Repo) DeleteByRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByRecipeSQL, userID, recipeID); err != nil {
		return postgres.MapError(err, "meal_plan", recipeID)
	}

	return nil
}

func scanPlannedMeal(row pgx.Row) (*domain.PlannedMeal, error) {
	var (
		m    domain.PlannedMeal
		slot string
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.RecipeID, &m.Date, &slot, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Slot = domain.MealSlot(slot)
	return &m, nil
}

func scanPlannedMeals(rows pgx.Rows) ([]*domain.PlannedMeal, error) {
	meals := []*domain.PlannedMeal{}
	for rows.Next() {
		m, err := scanPlannedMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planned meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read planned meals: %w", err)
	}
	return meals, nil
}
