package mealplan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// PlanMeal assigns a recipe to a (date, slot) pair of the authenticated
// user's planner. An occupied pair is replaced in place.
func (s *Service) PlanMeal(ctx context.Context, input PlanMealInput) (*domain.PlannedMeal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Reject dangling assignments up front rather than surfacing the
	// foreign key violation.
	if _, err := s.recipes.GetByID(ctx, input.RecipeID); err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	planned, err := s.plans.Upsert(ctx, &domain.PlannedMeal{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: input.RecipeID,
		Date:     input.Date,
		Slot:     input.Slot,
	})
	if err != nil {
		return nil, fmt.Errorf("plan meal: %w", err)
	}

	s.log.InfoContext(ctx, "meal planned",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", input.RecipeID.String()),
		slog.String("date", input.Date),
		slog.String("slot", input.Slot.String()),
	)

	return planned, nil
}
