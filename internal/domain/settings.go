package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings is the per-user planner display preferences: which of the four
// meal slots the planner shows. At least one slot must stay visible.
type UserSettings struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ShowBreakfast bool
	ShowLunch     bool
	ShowDinner    bool
	ShowSnack     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SettingsChanges is a partial settings update. Nil fields keep their
// current value.
type SettingsChanges struct {
	ShowBreakfast *bool
	ShowLunch     *bool
	ShowDinner    *bool
	ShowSnack     *bool
}

// Apply returns s with the non-nil changes overlaid.
func (c SettingsChanges) Apply(s UserSettings) UserSettings {
	if c.ShowBreakfast != nil {
		s.ShowBreakfast = *c.ShowBreakfast
	}
	if c.ShowLunch != nil {
		s.ShowLunch = *c.ShowLunch
	}
	if c.ShowDinner != nil {
		s.ShowDinner = *c.ShowDinner
	}
	if c.ShowSnack != nil {
		s.ShowSnack = *c.ShowSnack
	}
	return s
}

// DefaultUserSettings returns the settings a first read transparently
// provisions: all four slots visible.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:        userID,
		ShowBreakfast: true,
		ShowLunch:     true,
		ShowDinner:    true,
		ShowSnack:     true,
	}
}

// AnySlotVisible reports whether at least one slot remains visible.
func (s UserSettings) AnySlotVisible() bool {
	return s.ShowBreakfast || s.ShowLunch || s.ShowDinner || s.ShowSnack
}

// ShowsSlot reports whether the given planner slot is visible.
func (s UserSettings) ShowsSlot(slot MealSlot) bool {
	switch slot {
	case MealSlotBreakfast:
		return s.ShowBreakfast
	case MealSlotLunch:
		return s.ShowLunch
	case MealSlotDinner:
		return s.ShowDinner
	case MealSlotSnack:
		return s.ShowSnack
	}
	return false
}
