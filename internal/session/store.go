// Package session holds the in-memory state of one signed-in client session:
// the recipe collections, the swipe history, the planner index and the
// derived views the UI reads. The store mutates local state only after the
// backing service confirmed the write, so a failed call never leaves a
// partial change behind.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/mealplan"
	"github.com/tboivin/swipemeal-backend/internal/service/recipe"
)

type recipeGateway interface {
	CreateRecipe(ctx context.Context, input recipe.CreateRecipeInput) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, input recipe.UpdateRecipeInput) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	ListHouseholdRecipes(ctx context.Context) ([]*domain.Recipe, error)
	ListLikedRecipes(ctx context.Context) ([]*domain.Recipe, error)
	LikeRecipe(ctx context.Context, recipeID uuid.UUID) error
	UnlikeRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type plannerGateway interface {
	PlanMeal(ctx context.Context, input mealplan.PlanMealInput) (*domain.PlannedMeal, error)
	RemoveMeal(ctx context.Context, ref mealplan.SlotRef) error
}

// Store is the per-session state authority. It is safe for concurrent use;
// mutating operations additionally hold a per-intent in-flight guard so a
// double-submit cannot issue two identical remote writes.
type Store struct {
	log     *slog.Logger
	userID  uuid.UUID
	recipes recipeGateway
	planner plannerGateway // nil keeps the planner purely local

	mu       sync.Mutex
	list     []*domain.Recipe // newest-first
	liked    []*domain.Recipe
	rejected map[uuid.UUID]struct{}
	plan     planIndex
	loading  bool
	inFlight map[string]struct{}
}

// New creates an empty session store for one user. planner may be nil, in
// which case planned meals live only in memory.
func New(log *slog.Logger, userID uuid.UUID, recipes recipeGateway, planner plannerGateway) *Store {
	return &Store{
		log:      log.With("component", "session", "user_id", userID.String()),
		userID:   userID,
		recipes:  recipes,
		planner:  planner,
		rejected: make(map[uuid.UUID]struct{}),
		inFlight: make(map[string]struct{}),
	}
}

// Load populates the store from the backing services. The recipe and liked
// fetches run in parallel and apply independently: a failed liked fetch
// leaves the liked set empty, a failed recipe fetch installs the built-in
// placeholder set so the UI is never blank.
func (s *Store) Load(ctx context.Context) error {
	if err := s.begin("load"); err != nil {
		return err
	}
	defer s.end("load")

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		wg       sync.WaitGroup
		fetched  []*domain.Recipe
		fetchErr error
		likedSet []*domain.Recipe
		likedErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fetched, fetchErr = s.recipes.ListHouseholdRecipes(ctx)
	}()
	go func() {
		defer wg.Done()
		likedSet, likedErr = s.recipes.ListLikedRecipes(ctx)
	}()
	wg.Wait()

	if fetchErr != nil {
		s.log.WarnContext(ctx, "recipe load failed, using placeholder set",
			slog.String("error", fetchErr.Error()))
		fetched = placeholderRecipes()
	}
	if likedErr != nil {
		s.log.WarnContext(ctx, "liked recipes load failed",
			slog.String("error", likedErr.Error()))
		likedSet = nil
	}

	s.mu.Lock()
	s.list = fetched
	s.liked = likedSet
	s.loading = false
	s.mu.Unlock()

	if fetchErr != nil {
		return fmt.Errorf("load recipes: %w", fetchErr)
	}
	if likedErr != nil {
		return fmt.Errorf("load liked recipes: %w", likedErr)
	}
	return nil
}

// Loading reports whether the initial load is still in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Reset clears every collection. Called on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = nil
	s.liked = nil
	s.rejected = make(map[uuid.UUID]struct{})
	s.plan = planIndex{}
	s.loading = false
}

// Recipes returns the current recipe collection, newest-first.
func (s *Store) Recipes() []*domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Recipe(nil), s.list...)
}

// Liked returns the current liked collection.
func (s *Store) Liked() []*domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Recipe(nil), s.liked...)
}

// begin marks an intent as in flight; a second identical intent before the
// first resolved is refused.
func (s *Store) begin(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[key]; busy {
		return fmt.Errorf("operation %q already in flight: %w", key, domain.ErrConflict)
	}
	s.inFlight[key] = struct{}{}
	return nil
}

func (s *Store) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}
