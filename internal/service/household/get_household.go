package household

import (
	"context"
	"fmt"
	"strings"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// GetMyHousehold returns the authenticated user's household with its member
// list. Returns domain.ErrNotFound when the user has no household.
func (s *Service) GetMyHousehold(ctx context.Context) (*HouseholdView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	h, err := s.households.GetByID(ctx, membership.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}

	members, err := s.households.ListMembers(ctx, membership.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return &HouseholdView{Household: h, Members: members}, nil
}

// RenameHousehold changes the household's display name. Owners and admins
// only.
func (s *Service) RenameHousehold(ctx context.Context, name string) (*domain.Household, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if len(name) > 100 {
		return nil, domain.NewValidationError("name", "max 100 characters")
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !membership.Role.CanManageMembers() {
		return nil, fmt.Errorf("rename household: %w", domain.ErrForbidden)
	}

	h, err := s.households.UpdateName(ctx, membership.HouseholdID, name)
	if err != nil {
		return nil, fmt.Errorf("update household name: %w", err)
	}

	return h, nil
}
