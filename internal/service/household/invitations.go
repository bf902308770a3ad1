package household

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// InviteMember records an email invitation into the caller's household.
// Any member may invite.
func (s *Service) InviteMember(ctx context.Context, email string) (*domain.HouseholdInvitation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	inv, err := s.households.CreateInvitation(ctx, &domain.HouseholdInvitation{
		ID:           uuid.New(),
		HouseholdID:  membership.HouseholdID,
		InvitedBy:    userID,
		InvitedEmail: email,
		Status:       domain.InvitationStatusPending,
		ExpiresAt:    time.Now().UTC().Add(s.inviteTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	s.log.InfoContext(ctx, "household invitation created",
		slog.String("household_id", membership.HouseholdID.String()),
		slog.String("invitation_id", inv.ID.String()),
		slog.String("invited_by", userID.String()),
	)

	return inv, nil
}

// ListInvitations returns the pending invitations of the caller's household.
func (s *Service) ListInvitations(ctx context.Context) ([]*domain.HouseholdInvitation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	invitations, err := s.households.ListPending(ctx, membership.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invitations, nil
}

// ListMyInvitations returns the pending invitations addressed to the
// caller's email. Returns an empty list when the token carries no email.
func (s *Service) ListMyInvitations(ctx context.Context) ([]*domain.HouseholdInvitation, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	email := ctxutil.UserEmailFromCtx(ctx)
	if email == "" {
		return []*domain.HouseholdInvitation{}, nil
	}

	invitations, err := s.households.ListPendingByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list invitations by email: %w", err)
	}

	return invitations, nil
}

// AcceptInvitation joins the caller to the inviting household and resolves
// the invitation. The invitation must be addressed to the caller's email,
// still pending, and not expired.
func (s *Service) AcceptInvitation(ctx context.Context, invitationID uuid.UUID) (*domain.Household, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	inv, err := s.invitationForCaller(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if inv.IsExpired(time.Now().UTC()) {
		return nil, fmt.Errorf("invitation %s expired: %w", invitationID, domain.ErrConflict)
	}

	s.rememberEmail(ctx, userID, ctxutil.UserEmailFromCtx(ctx))

	// Membership and the status flip land together or not at all.
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, txErr := s.households.AddMember(txCtx, &domain.HouseholdMember{
			ID:          uuid.New(),
			HouseholdID: inv.HouseholdID,
			UserID:      userID,
			Role:        domain.HouseholdRoleMember,
		}); txErr != nil {
			return fmt.Errorf("add member: %w", txErr)
		}

		if _, txErr := s.households.SetStatus(txCtx, invitationID, domain.InvitationStatusAccepted); txErr != nil {
			return fmt.Errorf("resolve invitation: %w", txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	h, err := s.households.GetByID(ctx, inv.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}

	s.log.InfoContext(ctx, "household invitation accepted",
		slog.String("user_id", userID.String()),
		slog.String("household_id", inv.HouseholdID.String()),
		slog.String("invitation_id", invitationID.String()),
	)

	return h, nil
}

// DeclineInvitation resolves an invitation addressed to the caller without
// joining.
func (s *Service) DeclineInvitation(ctx context.Context, invitationID uuid.UUID) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.invitationForCaller(ctx, invitationID); err != nil {
		return err
	}

	if _, err := s.households.SetStatus(ctx, invitationID, domain.InvitationStatusDeclined); err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}

	return nil
}

// CancelInvitation withdraws a pending invitation from the caller's
// household. Owners and admins only.
func (s *Service) CancelInvitation(ctx context.Context, invitationID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if invitationID == uuid.Nil {
		return domain.NewValidationError("invitation_id", "required")
	}

	membership, err := s.households.GetMembership(ctx, userID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if !membership.Role.CanManageMembers() {
		return fmt.Errorf("cancel invitation: %w", domain.ErrForbidden)
	}

	inv, err := s.households.GetInvitation(ctx, invitationID)
	if err != nil {
		return fmt.Errorf("get invitation: %w", err)
	}
	if inv.HouseholdID != membership.HouseholdID {
		return fmt.Errorf("invitation %s: %w", invitationID, domain.ErrNotFound)
	}

	if _, err := s.households.SetStatus(ctx, invitationID, domain.InvitationStatusCancelled); err != nil {
		return fmt.Errorf("cancel invitation: %w", err)
	}

	return nil
}

// invitationForCaller loads a pending invitation and checks it is addressed
// to the caller's email.
func (s *Service) invitationForCaller(ctx context.Context, invitationID uuid.UUID) (*domain.HouseholdInvitation, error) {
	if invitationID == uuid.Nil {
		return nil, domain.NewValidationError("invitation_id", "required")
	}

	inv, err := s.households.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	if inv.Status.IsTerminal() {
		return nil, fmt.Errorf("invitation %s already resolved: %w", invitationID, domain.ErrConflict)
	}

	email := ctxutil.UserEmailFromCtx(ctx)
	if email == "" || !strings.EqualFold(email, inv.InvitedEmail) {
		return nil, fmt.Errorf("invitation %s: %w", invitationID, domain.ErrForbidden)
	}

	return inv, nil
}
