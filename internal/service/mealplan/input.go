package mealplan

import (
	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// PlanMealInput carries one planner assignment.
type PlanMealInput struct {
	RecipeID uuid.UUID
	Date     string // domain.PlanDateLayout
	Slot     domain.MealSlot
}

func (in *PlanMealInput) Validate() error {
	var errs []domain.FieldError

	if in.RecipeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "recipe_id", Message: "required"})
	}
	if err := domain.ValidatePlanDate(in.Date); err != nil {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be an ISO date (YYYY-MM-DD)"})
	}
	if !in.Slot.IsValid() {
		errs = append(errs, domain.FieldError{Field: "slot", Message: "must be breakfast, lunch, dinner or snack"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SlotRef addresses one (date, slot) pair.
type SlotRef struct {
	Date string
	Slot domain.MealSlot
}

func (r *SlotRef) Validate() error {
	var errs []domain.FieldError

	if err := domain.ValidatePlanDate(r.Date); err != nil {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be an ISO date (YYYY-MM-DD)"})
	}
	if !r.Slot.IsValid() {
		errs = append(errs, domain.FieldError{Field: "slot", Message: "must be breakfast, lunch, dinner or snack"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
