// Package mealplan implements the weekly planner. Assignments are keyed on
// the (date, slot) pair per user: planning into an occupied pair replaces
// the prior recipe.
package mealplan

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

type planRepo interface {
	Upsert(ctx context.Context, m *domain.PlannedMeal) (*domain.PlannedMeal, error)
	Remove(ctx context.Context, userID uuid.UUID, date string, slot domain.MealSlot) error
	ListForDate(ctx context.Context, userID uuid.UUID, date string) ([]*domain.PlannedMeal, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.PlannedMeal, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.PlannedMeal, error)
	DeleteByRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
}

type recipeGetter interface {
	GetByID(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error)
}

// Service provides planner operations.
type Service struct {
	plans   planRepo
	recipes recipeGetter
	log     *slog.Logger
}

// NewService creates a new MealPlan service.
func NewService(log *slog.Logger, plans planRepo, recipes recipeGetter) *Service {
	return &Service{
		plans:   plans,
		recipes: recipes,
		log:     log.With("service", "mealplan"),
	}
}
