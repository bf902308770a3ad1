package mealplan

import (
	"context"
	"fmt"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// MealsForDate returns the authenticated user's assignments for one day.
func (s *Service) MealsForDate(ctx context.Context, date string) ([]*domain.PlannedMeal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := domain.ValidatePlanDate(date); err != nil {
		return nil, err
	}

	meals, err := s.plans.ListForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list meals for date: %w", err)
	}

	return meals, nil
}

// ListMeals returns every assignment of the authenticated user's planner,
// ordered by date then slot.
func (s *Service) ListMeals(ctx context.Context) ([]*domain.PlannedMeal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	meals, err := s.plans.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	return meals, nil
}

// MealsInRange returns the assignments between from and to inclusive, for
// week views.
func (s *Service) MealsInRange(ctx context.Context, from, to string) ([]*domain.PlannedMeal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := domain.ValidatePlanDate(from); err != nil {
		return nil, err
	}
	if err := domain.ValidatePlanDate(to); err != nil {
		return nil, err
	}
	if to < from {
		return nil, domain.NewValidationError("to", "must not precede from")
	}

	meals, err := s.plans.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list meals in range: %w", err)
	}

	return meals, nil
}
