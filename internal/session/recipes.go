package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/recipe"
)

// AddRecipe creates a recipe through the backing service and, on success,
// prepends it to the collection. The entity's id and image URL are only
// known after the remote call, so there is no optimistic insert.
func (s *Store) AddRecipe(ctx context.Context, input recipe.CreateRecipeInput) (*domain.Recipe, error) {
	if err := s.begin("recipe:create"); err != nil {
		return nil, err
	}
	defer s.end("recipe:create")

	created, err := s.recipes.CreateRecipe(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("add recipe: %w", err)
	}

	s.mu.Lock()
	s.list = append([]*domain.Recipe{created}, s.list...)
	s.mu.Unlock()

	return created, nil
}

// UpdateRecipe updates a recipe through the backing service and, on success,
// replaces the stored copy everywhere it appears.
func (s *Store) UpdateRecipe(ctx context.Context, input recipe.UpdateRecipeInput) (*domain.Recipe, error) {
	key := "recipe:update:" + input.RecipeID.String()
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.end(key)

	updated, err := s.recipes.UpdateRecipe(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	s.mu.Lock()
	replaceByID(s.list, updated)
	replaceByID(s.liked, updated)
	s.mu.Unlock()

	return updated, nil
}

// DeleteRecipe deletes a recipe through the backing service and, on success,
// purges it from every collection, the liked set and the planner included.
func (s *Store) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	key := "recipe:delete:" + recipeID.String()
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if err := s.recipes.DeleteRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.mu.Lock()
	s.list = removeByID(s.list, recipeID)
	s.liked = removeByID(s.liked, recipeID)
	delete(s.rejected, recipeID)
	s.plan.RemoveRecipe(recipeID)
	s.mu.Unlock()

	return nil
}

// LikeRecipe records a like. A recipe already in the liked set is a local
// no-op: no remote call is made.
func (s *Store) LikeRecipe(ctx context.Context, recipeID uuid.UUID) error {
	s.mu.Lock()
	if findByID(s.liked, recipeID) != nil {
		s.mu.Unlock()
		return nil
	}
	target := findByID(s.list, recipeID)
	s.mu.Unlock()

	if target == nil {
		return fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}

	key := "recipe:like:" + recipeID.String()
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if err := s.recipes.LikeRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("like recipe: %w", err)
	}

	s.mu.Lock()
	if findByID(s.liked, recipeID) == nil {
		s.liked = append(s.liked, target)
	}
	s.mu.Unlock()

	return nil
}

// UnlikeRecipe removes a like. A recipe not in the liked set is a local
// no-op.
func (s *Store) UnlikeRecipe(ctx context.Context, recipeID uuid.UUID) error {
	s.mu.Lock()
	known := findByID(s.liked, recipeID) != nil
	s.mu.Unlock()
	if !known {
		return nil
	}

	key := "recipe:unlike:" + recipeID.String()
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if err := s.recipes.UnlikeRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("unlike recipe: %w", err)
	}

	s.mu.Lock()
	s.liked = removeByID(s.liked, recipeID)
	s.mu.Unlock()

	return nil
}

// RejectRecipe marks a recipe as swiped away for the rest of the session.
// Purely local, nothing is persisted.
func (s *Store) RejectRecipe(recipeID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected[recipeID] = struct{}{}
}

func findByID(list []*domain.Recipe, id uuid.UUID) *domain.Recipe {
	for _, r := range list {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func replaceByID(list []*domain.Recipe, updated *domain.Recipe) {
	for i, r := range list {
		if r.ID == updated.ID {
			list[i] = updated
			return
		}
	}
}

func removeByID(list []*domain.Recipe, id uuid.UUID) []*domain.Recipe {
	out := list[:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
