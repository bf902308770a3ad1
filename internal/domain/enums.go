package domain

// MealType categorizes a recipe or filters the swipe deck.
// MealTypeAll is a filter value only: it is never stored on a recipe.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
	MealTypeFullMeal  MealType = "full-meal"
	MealTypeAll       MealType = "all"
)

func (m MealType) String() string { return string(m) }

func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack,
		MealTypeFullMeal, MealTypeAll:
		return true
	}
	return false
}

// IsStorable reports whether the value may be persisted on a recipe.
func (m MealType) IsStorable() bool {
	return m.IsValid() && m != MealTypeAll
}

// MealSlot is one of the four recurring planner slots used as the
// per-day key of a planned meal.
type MealSlot string

const (
	MealSlotBreakfast MealSlot = "breakfast"
	MealSlotLunch     MealSlot = "lunch"
	MealSlotDinner    MealSlot = "dinner"
	MealSlotSnack     MealSlot = "snack"
)

// MealSlots lists the four planner slots in day order.
var MealSlots = []MealSlot{MealSlotBreakfast, MealSlotLunch, MealSlotDinner, MealSlotSnack}

func (s MealSlot) String() string { return string(s) }

func (s MealSlot) IsValid() bool {
	switch s {
	case MealSlotBreakfast, MealSlotLunch, MealSlotDinner, MealSlotSnack:
		return true
	}
	return false
}

// Difficulty rates how hard a recipe is to cook.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// HouseholdRole is a member's authorization level within a household.
type HouseholdRole string

const (
	HouseholdRoleOwner  HouseholdRole = "owner"
	HouseholdRoleAdmin  HouseholdRole = "admin"
	HouseholdRoleMember HouseholdRole = "member"
)

func (r HouseholdRole) String() string { return string(r) }

func (r HouseholdRole) IsValid() bool {
	switch r {
	case HouseholdRoleOwner, HouseholdRoleAdmin, HouseholdRoleMember:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may remove members or change roles.
func (r HouseholdRole) CanManageMembers() bool {
	return r == HouseholdRoleOwner || r == HouseholdRoleAdmin
}

// InvitationStatus is the lifecycle state of a household invitation.
// pending is the only non-terminal state.
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusDeclined  InvitationStatus = "declined"
	InvitationStatusCancelled InvitationStatus = "cancelled"
)

func (s InvitationStatus) String() string { return string(s) }

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted,
		InvitationStatusDeclined, InvitationStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status may no longer change.
func (s InvitationStatus) IsTerminal() bool {
	return s != InvitationStatusPending
}
