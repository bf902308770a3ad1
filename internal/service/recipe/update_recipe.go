package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// UpdateRecipe replaces a recipe's content for the authenticated owner.
// A new image is uploaded before the row changes; the previous image is
// deleted only once the update has stuck. If the update fails, the newly
// uploaded image is removed instead.
func (s *Service) UpdateRecipe(ctx context.Context, input UpdateRecipeInput) (*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.recipes.GetByID(ctx, input.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if existing.OwnerID != userID {
		return nil, fmt.Errorf("recipe %s: %w", input.RecipeID, domain.ErrForbidden)
	}

	recipe := recipeFromForm(input.Form)
	recipe.ID = input.RecipeID
	recipe.OwnerID = userID

	var previousURL string
	if existing.ImageURL != nil {
		previousURL = *existing.ImageURL
	}

	if input.Image != nil {
		url, err := s.images.Upload(ctx, userID, recipe.ID, input.Image.ContentType, input.Image.Body)
		if err != nil {
			return nil, fmt.Errorf("upload recipe image: %w", err)
		}
		recipe.ImageURL = &url
	} else if recipe.ImageURL == nil {
		// No new image and none submitted: keep the stored one.
		recipe.ImageURL = existing.ImageURL
	}

	updated, err := s.recipes.Update(ctx, recipe)
	if err != nil {
		if input.Image != nil && recipe.ImageURL != nil {
			s.deleteImage(ctx, *recipe.ImageURL)
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	// The old image is unreferenced now.
	if input.Image != nil && previousURL != "" {
		s.deleteImage(ctx, previousURL)
	}

	s.log.InfoContext(ctx, "recipe updated",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", updated.ID.String()),
	)

	return updated, nil
}
