package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// LikeRecipe marks a recipe as liked by the authenticated user. Liking an
// already liked recipe is a no-op.
func (s *Service) LikeRecipe(ctx context.Context, recipeID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if recipeID == uuid.Nil {
		return domain.NewValidationError("recipe_id", "required")
	}

	if err := s.recipes.Like(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("like recipe: %w", err)
	}

	s.log.InfoContext(ctx, "recipe liked",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", recipeID.String()),
	)

	return nil
}

// UnlikeRecipe removes the authenticated user's like. Idempotent.
func (s *Service) UnlikeRecipe(ctx context.Context, recipeID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if recipeID == uuid.Nil {
		return domain.NewValidationError("recipe_id", "required")
	}

	if err := s.recipes.Unlike(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("unlike recipe: %w", err)
	}

	return nil
}

// ListLikedRecipes returns the authenticated user's liked recipes, most
// recently liked first.
func (s *Service) ListLikedRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	recipes, err := s.recipes.ListLiked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked recipes: %w", err)
	}

	return recipes, nil
}

// ListLikedRecipeIDs returns just the IDs of the authenticated user's liked
// recipes, most recent first.
func (s *Service) ListLikedRecipeIDs(ctx context.Context) ([]uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ids, err := s.recipes.ListLikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked recipe ids: %w", err)
	}

	return ids, nil
}
