package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanDateLayout is the ISO calendar date format used as the planner's
// per-day key ("2024-06-01").
const PlanDateLayout = "2006-01-02"

// PlannedMeal assigns one recipe to one (date, slot) pair. The pair is the
// identity: upserting an occupied pair replaces the prior assignment, no
// history is kept.
type PlannedMeal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RecipeID  uuid.UUID
	Date      string // PlanDateLayout
	Slot      MealSlot
	CreatedAt time.Time
}

// ValidatePlanDate checks that the string is a well-formed ISO calendar date.
func ValidatePlanDate(date string) error {
	if _, err := time.Parse(PlanDateLayout, date); err != nil {
		return NewValidationError("date", "must be an ISO date (YYYY-MM-DD)")
	}
	return nil
}
