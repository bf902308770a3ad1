package household

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

func invitedCtx(userID uuid.UUID, email string) context.Context {
	return ctxutil.WithUserEmail(authedCtx(userID), email)
}

func pendingInvitation(householdID uuid.UUID, email string) *domain.HouseholdInvitation {
	return &domain.HouseholdInvitation{
		ID:           uuid.New(),
		HouseholdID:  householdID,
		InvitedBy:    uuid.New(),
		InvitedEmail: email,
		Status:       domain.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func TestInviteMember_Success(t *testing.T) {
	t.Parallel()

	householdID := uuid.New()
	var stored *domain.HouseholdInvitation

	repo := &mockHouseholdRepo{
		GetMembershipFunc: func(ctx context.Context, uid uuid.UUID) (*domain.HouseholdMember, error) {
			return &domain.HouseholdMember{HouseholdID: householdID, UserID: uid, Role: domain.HouseholdRoleMember}, nil
		},
		CreateInvitationFunc: func(ctx context.Context, inv *domain.HouseholdInvitation) (*domain.HouseholdInvitation, error) {
			stored = inv
			return inv, nil
		},
	}

	svc := newTestService(repo)

	inv, err := svc.InviteMember(authedCtx(uuid.New()), "  friend@example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvitedEmail != "friend@example.com" {
		t.Errorf("email not trimmed: %q", inv.InvitedEmail)
	}
	if stored.HouseholdID != householdID {
		t.Errorf("household mismatch: %s", stored.HouseholdID)
	}
	if stored.Status != domain.InvitationStatusPending {
		t.Errorf("status: got %q, want pending", stored.Status)
	}
	if !stored.ExpiresAt.After(time.Now()) {
		t.Error("invitation should expire in the future")
	}
}

func TestInviteMember_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockHouseholdRepo{})

	for _, email := range []string{"", "not-an-email", "a@"} {
		if _, err := svc.InviteMember(authedCtx(uuid.New()), email); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("email %q: expected ErrValidation, got %v", email, err)
		}
	}
}

func TestInviteMember_NotInHousehold(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockHouseholdRepo{})

	_, err := svc.InviteMember(authedCtx(uuid.New()), "friend@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAcceptInvitation_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	householdID := uuid.New()
	inv := pendingInvitation(householdID, "me@example.com")

	var added *domain.HouseholdMember
	var resolved domain.InvitationStatus

	repo := &mockHouseholdRepo{
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
		AddMemberFunc: func(ctx context.Context, m *domain.HouseholdMember) (*domain.HouseholdMember, error) {
			added = m
			return m, nil
		},
		SetStatusFunc: func(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.HouseholdInvitation, error) {
			resolved = status
			return &domain.HouseholdInvitation{ID: id, Status: status}, nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
			return &domain.Household{ID: id, Name: "Home"}, nil
		},
	}

	svc := newTestService(repo)

	h, err := svc.AcceptInvitation(invitedCtx(userID, "Me@Example.com"), inv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID != householdID {
		t.Errorf("household mismatch: %s", h.ID)
	}
	if added == nil || added.UserID != userID || added.Role != domain.HouseholdRoleMember {
		t.Errorf("unexpected membership: %+v", added)
	}
	if resolved != domain.InvitationStatusAccepted {
		t.Errorf("status: got %q, want accepted", resolved)
	}
}

func TestAcceptInvitation_Expired(t *testing.T) {
	t.Parallel()

	inv := pendingInvitation(uuid.New(), "me@example.com")
	inv.ExpiresAt = time.Now().Add(-time.Minute)

	repo := &mockHouseholdRepo{
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
	}

	svc := newTestService(repo)

	_, err := svc.AcceptInvitation(invitedCtx(uuid.New(), "me@example.com"), inv.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for expired invitation, got %v", err)
	}
}

func TestAcceptInvitation_EmailMismatch(t *testing.T) {
	t.Parallel()

	inv := pendingInvitation(uuid.New(), "someone.else@example.com")

	repo := &mockHouseholdRepo{
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
	}

	svc := newTestService(repo)

	// Wrong email.
	if _, err := svc.AcceptInvitation(invitedCtx(uuid.New(), "me@example.com"), inv.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for wrong email, got %v", err)
	}
	// Token without an email claim.
	if _, err := svc.AcceptInvitation(authedCtx(uuid.New()), inv.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden without email claim, got %v", err)
	}
}

func TestAcceptInvitation_AlreadyResolved(t *testing.T) {
	t.Parallel()

	inv := pendingInvitation(uuid.New(), "me@example.com")
	inv.Status = domain.InvitationStatusDeclined

	repo := &mockHouseholdRepo{
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
	}

	svc := newTestService(repo)

	_, err := svc.AcceptInvitation(invitedCtx(uuid.New(), "me@example.com"), inv.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for resolved invitation, got %v", err)
	}
}

func TestDeclineInvitation(t *testing.T) {
	t.Parallel()

	inv := pendingInvitation(uuid.New(), "me@example.com")
	var resolved domain.InvitationStatus

	repo := &mockHouseholdRepo{
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
		SetStatusFunc: func(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.HouseholdInvitation, error) {
			resolved = status
			return &domain.HouseholdInvitation{ID: id, Status: status}, nil
		},
	}

	svc := newTestService(repo)

	if err := svc.DeclineInvitation(invitedCtx(uuid.New(), "me@example.com"), inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != domain.InvitationStatusDeclined {
		t.Errorf("status: got %q, want declined", resolved)
	}
}

func TestCancelInvitation_RequiresManageRole(t *testing.T) {
	t.Parallel()

	householdID := uuid.New()
	inv := pendingInvitation(householdID, "friend@example.com")

	repo := &mockHouseholdRepo{
		GetMembershipFunc: func(ctx context.Context, uid uuid.UUID) (*domain.HouseholdMember, error) {
			return &domain.HouseholdMember{HouseholdID: householdID, UserID: uid, Role: domain.HouseholdRoleMember}, nil
		},
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
	}

	svc := newTestService(repo)

	err := svc.CancelInvitation(authedCtx(uuid.New()), inv.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for plain member, got %v", err)
	}
}

func TestCancelInvitation_OtherHousehold(t *testing.T) {
	t.Parallel()

	inv := pendingInvitation(uuid.New(), "friend@example.com")

	repo := &mockHouseholdRepo{
		GetMembershipFunc: func(ctx context.Context, uid uuid.UUID) (*domain.HouseholdMember, error) {
			return &domain.HouseholdMember{HouseholdID: uuid.New(), UserID: uid, Role: domain.HouseholdRoleOwner}, nil
		},
		GetInvitationFunc: func(ctx context.Context, id uuid.UUID) (*domain.HouseholdInvitation, error) {
			return inv, nil
		},
	}

	svc := newTestService(repo)

	err := svc.CancelInvitation(authedCtx(uuid.New()), inv.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another household's invitation, got %v", err)
	}
}

func TestListMyInvitations_NoEmailClaim(t *testing.T) {
	t.Parallel()

	called := false
	repo := &mockHouseholdRepo{
		ListPendingByEmailFunc: func(ctx context.Context, email string) ([]*domain.HouseholdInvitation, error) {
			called = true
			return nil, nil
		},
	}

	svc := newTestService(repo)

	invitations, err := svc.ListMyInvitations(authedCtx(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("lookup should be skipped without an email claim")
	}
	if len(invitations) != 0 {
		t.Errorf("expected empty list, got %d", len(invitations))
	}
}
