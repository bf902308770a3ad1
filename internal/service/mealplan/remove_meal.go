package mealplan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// RemoveMeal clears one (date, slot) pair of the authenticated user's
// planner.
func (s *Service) RemoveMeal(ctx context.Context, ref SlotRef) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := ref.Validate(); err != nil {
		return err
	}

	if err := s.plans.Remove(ctx, userID, ref.Date, ref.Slot); err != nil {
		return fmt.Errorf("remove meal: %w", err)
	}

	s.log.InfoContext(ctx, "meal removed",
		slog.String("user_id", userID.String()),
		slog.String("date", ref.Date),
		slog.String("slot", ref.Slot.String()),
	)

	return nil
}

// ClearRecipe drops every assignment of one recipe from the authenticated
// user's planner. Removing a recipe that is not planned is a no-op.
func (s *Service) ClearRecipe(ctx context.Context, recipeID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if recipeID == uuid.Nil {
		return domain.NewValidationError("recipe_id", "required")
	}

	if err := s.plans.DeleteByRecipe(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("clear recipe from plan: %w", err)
	}

	return nil
}
