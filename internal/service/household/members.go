package household

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// RemoveMember evicts another member from the caller's household. Owners and
// admins only; the owner cannot be removed, and members leave themselves via
// LeaveHousehold.
func (s *Service) RemoveMember(ctx context.Context, targetUserID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if targetUserID == uuid.Nil {
		return domain.NewValidationError("user_id", "required")
	}
	if targetUserID == userID {
		return domain.NewValidationError("user_id", "use leave to remove yourself")
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if !membership.Role.CanManageMembers() {
		return fmt.Errorf("remove member: %w", domain.ErrForbidden)
	}

	target, err := s.households.GetMembership(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("get target membership: %w", err)
	}
	if target.HouseholdID != membership.HouseholdID {
		return fmt.Errorf("member %s: %w", targetUserID, domain.ErrNotFound)
	}
	if target.Role == domain.HouseholdRoleOwner {
		return fmt.Errorf("owner cannot be removed: %w", domain.ErrForbidden)
	}

	if err := s.households.RemoveMember(ctx, membership.HouseholdID, targetUserID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	s.log.InfoContext(ctx, "household member removed",
		slog.String("household_id", membership.HouseholdID.String()),
		slog.String("removed_by", userID.String()),
		slog.String("user_id", targetUserID.String()),
	)

	return nil
}

// ChangeMemberRole switches another member between admin and member. Owners
// and admins only; ownership itself never changes hands here.
func (s *Service) ChangeMemberRole(ctx context.Context, targetUserID uuid.UUID, role domain.HouseholdRole) (*domain.HouseholdMember, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if targetUserID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	if role != domain.HouseholdRoleAdmin && role != domain.HouseholdRoleMember {
		return nil, domain.NewValidationError("role", "must be admin or member")
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !membership.Role.CanManageMembers() {
		return nil, fmt.Errorf("change member role: %w", domain.ErrForbidden)
	}

	target, err := s.households.GetMembership(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("get target membership: %w", err)
	}
	if target.HouseholdID != membership.HouseholdID {
		return nil, fmt.Errorf("member %s: %w", targetUserID, domain.ErrNotFound)
	}
	if target.Role == domain.HouseholdRoleOwner {
		return nil, fmt.Errorf("owner role cannot change: %w", domain.ErrForbidden)
	}

	updated, err := s.households.UpdateMemberRole(ctx, membership.HouseholdID, targetUserID, role)
	if err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}

	return updated, nil
}
