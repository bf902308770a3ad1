package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// DeleteRecipe removes a recipe owned by the authenticated user. Likes and
// planned meals referencing it cascade away in storage; the stored image is
// deleted best effort afterwards.
func (s *Service) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if recipeID == uuid.Nil {
		return domain.NewValidationError("recipe_id", "required")
	}

	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("get recipe: %w", err)
	}
	if existing.OwnerID != userID {
		return fmt.Errorf("recipe %s: %w", recipeID, domain.ErrForbidden)
	}

	if err := s.recipes.Delete(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	if existing.ImageURL != nil {
		s.deleteImage(ctx, *existing.ImageURL)
	}

	s.log.InfoContext(ctx, "recipe deleted",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", recipeID.String()),
	)

	return nil
}
