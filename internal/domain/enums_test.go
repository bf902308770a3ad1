package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMealType_IsValid(t *testing.T) {
	t.Parallel()

	for _, m := range []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner,
		MealTypeSnack, MealTypeFullMeal, MealTypeAll} {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, MealType("brunch").IsValid())
	assert.False(t, MealType("").IsValid())
}

func TestMealType_IsStorable(t *testing.T) {
	t.Parallel()

	assert.True(t, MealTypeDinner.IsStorable())
	assert.True(t, MealTypeFullMeal.IsStorable())
	assert.False(t, MealTypeAll.IsStorable())
	assert.False(t, MealType("brunch").IsStorable())
}

func TestMealSlot_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range MealSlots {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, MealSlot("full-meal").IsValid())
}

func TestHouseholdRole_CanManageMembers(t *testing.T) {
	t.Parallel()

	assert.True(t, HouseholdRoleOwner.CanManageMembers())
	assert.True(t, HouseholdRoleAdmin.CanManageMembers())
	assert.False(t, HouseholdRoleMember.CanManageMembers())
}

func TestInvitationStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, InvitationStatusPending.IsTerminal())
	assert.True(t, InvitationStatusAccepted.IsTerminal())
	assert.True(t, InvitationStatusDeclined.IsTerminal())
	assert.True(t, InvitationStatusCancelled.IsTerminal())
}
