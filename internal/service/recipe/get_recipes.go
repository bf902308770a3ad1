package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// GetRecipe returns a single recipe. Any authenticated user may read any
// recipe; household views depend on reading other members' recipes.
func (s *Service) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if recipeID == uuid.Nil {
		return nil, domain.NewValidationError("recipe_id", "required")
	}

	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	return recipe, nil
}

// ListMyRecipes returns the authenticated user's recipes, newest first.
func (s *Service) ListMyRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	recipes, err := s.recipes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	return recipes, nil
}

// ListHouseholdRecipes returns the recipes owned by all members of the
// authenticated user's household, newest first. A user without a household
// just gets their own recipes.
func (s *Service) ListHouseholdRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.recipes.ListByOwner(ctx, userID)
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}

	memberIDs, err := s.households.ListMemberUserIDs(ctx, membership.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("list household members: %w", err)
	}

	recipes, err := s.recipes.ListByOwners(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("list household recipes: %w", err)
	}

	return recipes, nil
}

// SearchRecipes returns the authenticated user's recipes matching the query.
func (s *Service) SearchRecipes(ctx context.Context, query domain.RecipeQuery) ([]*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if query.MealType != "" && !query.MealType.IsValid() {
		return nil, domain.NewValidationError("mealType", "unknown meal type")
	}
	if query.Difficulty != "" && !query.Difficulty.IsValid() {
		return nil, domain.NewValidationError("difficulty", "must be easy, medium or hard")
	}

	recipes, err := s.recipes.Search(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}

	return recipes, nil
}
