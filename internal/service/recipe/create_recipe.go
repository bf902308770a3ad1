package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// CreateRecipe creates a new recipe for the authenticated user.
// The image, if any, is uploaded first; if the insert then fails, the
// uploaded object is deleted so no orphan is left behind.
func (s *Service) CreateRecipe(ctx context.Context, input CreateRecipeInput) (*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	recipe := recipeFromForm(input.Form)
	recipe.ID = uuid.New()
	recipe.OwnerID = userID

	if input.Image != nil {
		url, err := s.images.Upload(ctx, userID, recipe.ID, input.Image.ContentType, input.Image.Body)
		if err != nil {
			return nil, fmt.Errorf("upload recipe image: %w", err)
		}
		recipe.ImageURL = &url
	}

	created, err := s.recipes.Create(ctx, recipe)
	if err != nil {
		if recipe.ImageURL != nil && input.Image != nil {
			s.deleteImage(ctx, *recipe.ImageURL)
		}
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.log.InfoContext(ctx, "recipe created",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", created.ID.String()),
		slog.String("title", created.Title),
	)

	return created, nil
}

func recipeFromForm(f domain.RecipeForm) *domain.Recipe {
	return &domain.Recipe{
		Title:       f.Title,
		Description: f.Description,
		MealType:    f.MealType,
		IsSimple:    f.IsSimple,
		Notes:       f.Notes,
		Ingredients: f.Ingredients,
		Equipment:   f.Equipment,
		Steps:       f.Steps,
		PrepTime:    f.PrepTime,
		CookTime:    f.CookTime,
		Servings:    f.Servings,
		Difficulty:  f.Difficulty,
		Category:    f.Category,
		ImageURL:    f.ImageURL,
	}
}
