package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// HouseholdCodeLength is the length of the join code, drawn from [A-Z0-9].
const HouseholdCodeLength = 6

// Household is a named group of users sharing recipes and meal plans,
// joined via a globally unique code.
type Household struct {
	ID        uuid.UUID
	Name      string
	Code      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HouseholdMember ties a user to a household. A user belongs to at most one
// household at a time; each household has exactly one owner (its creator).
type HouseholdMember struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	Role        HouseholdRole
	JoinedAt    time.Time

	// UserEmail is filled by the members listing join, not stored on the row.
	UserEmail string
}

// HouseholdInvitation is an email invitation into a household.
// Terminal states (accepted/declined/cancelled) are never revisited.
type HouseholdInvitation struct {
	ID           uuid.UUID
	HouseholdID  uuid.UUID
	InvitedBy    uuid.UUID
	InvitedEmail string
	Status       InvitationStatus
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IsExpired reports whether the invitation has lapsed relative to now.
func (i *HouseholdInvitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// NormalizeHouseholdCode prepares user input for a code lookup: codes are
// displayed uppercase and matched case/whitespace-insensitively.
func NormalizeHouseholdCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// User is the projection of the external identity service this module needs:
// just enough to resolve member emails. Accounts are created and
// authenticated elsewhere.
type User struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}
