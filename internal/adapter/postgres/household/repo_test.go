package household_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tboivin/swipemeal-backend/internal/adapter/postgres/household"
	"github.com/tboivin/swipemeal-backend/internal/adapter/postgres/testhelper"
	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*household.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return household.New(pool), pool
}

func uniqueCode() string {
	return domain.NormalizeHouseholdCode(uuid.New().String()[:domain.HouseholdCodeLength])
}

func TestRepo_Create_AndGetByCode(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	code := uniqueCode()
	created, err := repo.Create(ctx, &domain.Household{
		ID:        uuid.New(),
		Name:      "The Smiths",
		Code:      code,
		CreatedBy: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.Code != code {
		t.Errorf("Code mismatch: got %q, want %q", created.Code, code)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}

	got, err := repo.GetByCode(ctx, code)
	if err != nil {
		t.Fatalf("GetByCode: unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, created.ID)
	}

	if _, err := repo.GetByCode(ctx, "ZZZZZZ"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown code, got %v", err)
	}
}

func TestRepo_Create_DuplicateCode(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	code := uniqueCode()
	h := &domain.Household{ID: uuid.New(), Name: "First", Code: code, CreatedBy: owner.ID}
	if _, err := repo.Create(ctx, h); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	dup := &domain.Household{ID: uuid.New(), Name: "Second", Code: code, CreatedBy: owner.ID}
	if _, err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for duplicate code, got %v", err)
	}
}

func TestRepo_CodeExists(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	h := testhelper.SeedHousehold(t, pool, owner.ID)

	exists, err := repo.CodeExists(ctx, h.Code)
	if err != nil {
		t.Fatalf("CodeExists: %v", err)
	}
	if !exists {
		t.Error("expected existing code to be reported")
	}

	exists, err = repo.CodeExists(ctx, "NOPE99")
	if err != nil {
		t.Fatalf("CodeExists: %v", err)
	}
	if exists {
		t.Error("expected unknown code to be absent")
	}
}

func TestRepo_Membership_Lifecycle(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	joiner := testhelper.SeedUser(t, pool)
	h := testhelper.SeedHousehold(t, pool, owner.ID)

	added, err := repo.AddMember(ctx, &domain.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: h.ID,
		UserID:      joiner.ID,
		Role:        domain.HouseholdRoleMember,
	})
	if err != nil {
		t.Fatalf("AddMember: unexpected error: %v", err)
	}
	if added.Role != domain.HouseholdRoleMember {
		t.Errorf("Role mismatch: %q", added.Role)
	}

	got, err := repo.GetMembership(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("GetMembership: %v", err)
	}
	if got.HouseholdID != h.ID {
		t.Errorf("HouseholdID mismatch: got %s, want %s", got.HouseholdID, h.ID)
	}

	members, err := repo.ListMembers(ctx, h.ID)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].UserID != owner.ID {
		t.Errorf("expected owner first in join order, got %s", members[0].UserID)
	}
	if members[1].UserEmail != joiner.Email {
		t.Errorf("email join mismatch: got %q, want %q", members[1].UserEmail, joiner.Email)
	}

	count, err := repo.CountMembers(ctx, h.ID)
	if err != nil {
		t.Fatalf("CountMembers: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 members, got %d", count)
	}

	ids, err := repo.ListMemberUserIDs(ctx, h.ID)
	if err != nil {
		t.Fatalf("ListMemberUserIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != owner.ID || ids[1] != joiner.ID {
		t.Errorf("member ids mismatch: %v", ids)
	}

	if err := repo.RemoveMember(ctx, h.ID, joiner.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if _, err := repo.GetMembership(ctx, joiner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after removal, got %v", err)
	}
	if err := repo.RemoveMember(ctx, h.ID, joiner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double removal, got %v", err)
	}
}

func TestRepo_AddMember_SecondHousehold(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	testhelper.SeedHousehold(t, pool, owner.ID)
	second := testhelper.SeedHousehold(t, pool, other.ID)

	// owner already belongs to their own household.
	_, err := repo.AddMember(ctx, &domain.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: second.ID,
		UserID:      owner.ID,
		Role:        domain.HouseholdRoleMember,
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for second membership, got %v", err)
	}
}

func TestRepo_UpdateMemberRole(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	joiner := testhelper.SeedUser(t, pool)
	h := testhelper.SeedHousehold(t, pool, owner.ID)

	if _, err := repo.AddMember(ctx, &domain.HouseholdMember{
		ID: uuid.New(), HouseholdID: h.ID, UserID: joiner.ID, Role: domain.HouseholdRoleMember,
	}); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	updated, err := repo.UpdateMemberRole(ctx, h.ID, joiner.ID, domain.HouseholdRoleAdmin)
	if err != nil {
		t.Fatalf("UpdateMemberRole: %v", err)
	}
	if updated.Role != domain.HouseholdRoleAdmin {
		t.Errorf("Role not updated: %q", updated.Role)
	}

	if _, err := repo.UpdateMemberRole(ctx, h.ID, uuid.New(), domain.HouseholdRoleAdmin); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown member, got %v", err)
	}
}

func TestRepo_Delete_CascadesMembers(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	h := testhelper.SeedHousehold(t, pool, owner.ID)

	if err := repo.Delete(ctx, h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, h.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := repo.GetMembership(ctx, owner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected membership to cascade away, got %v", err)
	}
}

func TestRepo_Invitations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	h := testhelper.SeedHousehold(t, pool, owner.ID)

	inv := &domain.HouseholdInvitation{
		ID:           uuid.New(),
		HouseholdID:  h.ID,
		InvitedBy:    owner.ID,
		InvitedEmail: "friend@example.com",
		Status:       domain.InvitationStatusPending,
		ExpiresAt:    time.Now().UTC().Add(24 * time.Hour),
	}
	created, err := repo.CreateInvitation(ctx, inv)
	if err != nil {
		t.Fatalf("CreateInvitation: unexpected error: %v", err)
	}
	if created.Status != domain.InvitationStatusPending {
		t.Errorf("Status mismatch: %q", created.Status)
	}

	pending, err := repo.ListPending(ctx, h.ID)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != inv.ID {
		t.Fatalf("expected the pending invitation, got %d rows", len(pending))
	}

	// Case-insensitive email match.
	byEmail, err := repo.ListPendingByEmail(ctx, "FRIEND@example.com")
	if err != nil {
		t.Fatalf("ListPendingByEmail: %v", err)
	}
	if len(byEmail) != 1 {
		t.Fatalf("expected 1 invitation by email, got %d", len(byEmail))
	}

	accepted, err := repo.SetStatus(ctx, inv.ID, domain.InvitationStatusAccepted)
	if err != nil {
		t.Fatalf("SetStatus: unexpected error: %v", err)
	}
	if accepted.Status != domain.InvitationStatusAccepted {
		t.Errorf("Status not updated: %q", accepted.Status)
	}

	// Terminal states stay put.
	if _, err := repo.SetStatus(ctx, inv.ID, domain.InvitationStatusDeclined); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on resolved invitation, got %v", err)
	}
	if _, err := repo.SetStatus(ctx, uuid.New(), domain.InvitationStatusAccepted); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown invitation, got %v", err)
	}

	pending, err = repo.ListPending(ctx, h.ID)
	if err != nil {
		t.Fatalf("ListPending after accept: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending invitations, got %d", len(pending))
	}
}

func TestRepo_EnsureUser(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	id := uuid.New()
	email := "ensure-" + uuid.New().String()[:8] + "@example.com"

	if err := repo.EnsureUser(ctx, id, email); err != nil {
		t.Fatalf("EnsureUser: unexpected error: %v", err)
	}
	// Second call refreshes, does not conflict.
	updated := "new-" + email
	if err := repo.EnsureUser(ctx, id, updated); err != nil {
		t.Fatalf("EnsureUser twice: unexpected error: %v", err)
	}

	u, err := repo.GetUserByEmail(ctx, updated)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.ID != id {
		t.Errorf("ID mismatch: got %s, want %s", u.ID, id)
	}

	if _, err := repo.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown email, got %v", err)
	}
}
