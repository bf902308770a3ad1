package household

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// LeaveHousehold detaches the authenticated user from their household.
// When the last member leaves, the household itself is deleted; when the
// owner leaves with members remaining, the oldest remaining member becomes
// the owner so the household is never left headless.
func (s *Service) LeaveHousehold(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}

	householdID := membership.HouseholdID

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.households.RemoveMember(txCtx, householdID, userID); txErr != nil {
			return fmt.Errorf("remove member: %w", txErr)
		}

		remaining, txErr := s.households.ListMembers(txCtx, householdID)
		if txErr != nil {
			return fmt.Errorf("list members: %w", txErr)
		}

		if len(remaining) == 0 {
			if txErr := s.households.Delete(txCtx, householdID); txErr != nil {
				return fmt.Errorf("delete empty household: %w", txErr)
			}
			return nil
		}

		if membership.Role == domain.HouseholdRoleOwner {
			heir := remaining[0] // join order
			if _, txErr := s.households.UpdateMemberRole(txCtx, householdID, heir.UserID, domain.HouseholdRoleOwner); txErr != nil {
				return fmt.Errorf("promote new owner: %w", txErr)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "household left",
		slog.String("user_id", userID.String()),
		slog.String("household_id", householdID.String()),
	)

	return nil
}
