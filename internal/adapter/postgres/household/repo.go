// Package household implements the Household repository using PostgreSQL.
// It covers the household rows themselves, the membership table, email
// invitations and the users projection the member listing joins against.
package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tboivin/swipemeal-backend/internal/adapter/postgres"
	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// Repo provides household persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new household repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const householdColumns = `id, name, code, created_by, created_at, updated_at`

// ---------------------------------------------------------------------------
// Households
// ---------------------------------------------------------------------------

const createHouseholdSQL = `
INSERT INTO households (id, name, code, created_by)
VALUES ($1, $2, $3, $4)
RETURNING ` + householdColumns

// Create inserts a new household. Returns domain.ErrAlreadyExists if the
// code collides with an existing household.
func (r *Repo) Create(ctx context.Context, h *domain.Household) (*domain.Household, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createHouseholdSQL, h.ID, h.Name, h.Code, h.CreatedBy)

	created, err := scanHousehold(row)
	if err != nil {
		return nil, postgres.MapError(err, "household", h.ID)
	}

	return created, nil
}

const getHouseholdByIDSQL = `
SELECT ` + householdColumns + ` FROM households WHERE id = $1`

// GetByID returns a household by primary key.
func (r *Repo) GetByID(ctx context.Context, householdID uuid.UUID) (*domain.Household, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	h, err := scanHousehold(querier.QueryRow(ctx, getHouseholdByIDSQL, householdID))
	if err != nil {
		return nil, postgres.MapError(err, "household", householdID)
	}

	return h, nil
}

const getHouseholdByCodeSQL = `
SELECT ` + householdColumns + ` FROM households WHERE code = $1`

// GetByCode returns the household with the given join code. The caller is
// expected to normalize the code first.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Household, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	h, err := scanHousehold(querier.QueryRow(ctx, getHouseholdByCodeSQL, code))
	if err != nil {
		return nil, postgres.MapError(err, "household", uuid.Nil)
	}

	return h, nil
}

const codeExistsSQL = `SELECT EXISTS (SELECT 1 FROM households WHERE code = $1)`

// CodeExists reports whether a join code is already taken. Used by code
// generation; the unique constraint remains the source of truth.
func (r *Repo) CodeExists(ctx context.Context, code string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, codeExistsSQL, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("check household code: %w", err)
	}

	return exists, nil
}

const updateHouseholdNameSQL = `
UPDATE households SET name = $2, updated_at = now()
WHERE id = $1
RETURNING ` + householdColumns

// UpdateName renames a household.
func (r *Repo) UpdateName(ctx context.Context, householdID uuid.UUID, name string) (*domain.Household, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	h, err := scanHousehold(querier.QueryRow(ctx, updateHouseholdNameSQL, householdID, name))
	if err != nil {
		return nil, postgres.MapError(err, "household", householdID)
	}

	return h, nil
}

const deleteHouseholdSQL = `DELETE FROM households WHERE id = $1`

// Delete removes a household. Members and invitations cascade.
func (r *Repo) Delete(ctx context.Context, householdID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteHouseholdSQL, householdID)
	if err != nil {
		return postgres.MapError(err, "household", householdID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("household %s: %w", householdID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

const addMemberSQL = `
INSERT INTO household_members (id, household_id, user_id, role)
VALUES ($1, $2, $3, $4)
RETURNING id, household_id, user_id, role, joined_at`

// AddMember attaches a user to a household. The unique constraint on user_id
// makes this fail with domain.ErrAlreadyExists if the user already belongs
// to any household.
func (r *Repo) AddMember(ctx context.Context, m *domain.HouseholdMember) (*domain.HouseholdMember, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, addMemberSQL, m.ID, m.HouseholdID, m.UserID, m.Role.String())

	member, err := scanMember(row)
	if err != nil {
		return nil, postgres.MapError(err, "household_member", m.UserID)
	}

	return member, nil
}

const getMembershipSQL = `
SELECT id, household_id, user_id, role, joined_at
FROM household_members
WHERE user_id = $1`

// GetMembership returns the user's membership row, or domain.ErrNotFound
// if the user belongs to no household.
func (r *Repo) GetMembership(ctx context.Context, userID uuid.UUID) (*domain.HouseholdMember, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMember(querier.QueryRow(ctx, getMembershipSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "household_member", userID)
	}

	return m, nil
}

const listMembersSQL = `
SELECT m.id, m.household_id, m.user_id, m.role, m.joined_at,
       COALESCE(u.email, '')
FROM household_members m
LEFT JOIN users u ON u.id = m.user_id
WHERE m.household_id = $1
ORDER BY m.joined_at`

// ListMembers returns a household's members in join order, with each
// member's email resolved from the users projection when known.
func (r *Repo) ListMembers(ctx context.Context, householdID uuid.UUID) ([]*domain.HouseholdMember, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listMembersSQL, householdID)
	if err != nil {
		return nil, fmt.Errorf("list household members: %w", err)
	}
	defer rows.Close()

	members := []*domain.HouseholdMember{}
	for rows.Next() {
		var (
			m    domain.HouseholdMember
			role string
		)
		if err := rows.Scan(&m.ID, &m.HouseholdID, &m.UserID, &role, &m.JoinedAt, &m.UserEmail); err != nil {
			return nil, fmt.Errorf("scan household member: %w", err)
		}
		m.Role = domain.HouseholdRole(role)
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list household members: %w", err)
	}

	return members, nil
}

const countMembersSQL = `SELECT count(*) FROM household_members WHERE household_id = $1`

// CountMembers returns how many members a household has.
func (r *Repo) CountMembers(ctx context.Context, householdID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countMembersSQL, householdID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count household members: %w", err)
	}

	return count, nil
}

const removeMemberSQL = `
DELETE FROM household_members WHERE household_id = $1 AND user_id = $2`

// RemoveMember detaches a user from a household. Returns domain.ErrNotFound
// if the user is not a member of that household.
func (r *Repo) RemoveMember(ctx context.Context, householdID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, removeMemberSQL, householdID, userID)
	if err != nil {
		return postgres.MapError(err, "household_member", userID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("household_member %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

const updateMemberRoleSQL = `
UPDATE household_members SET role = $3
WHERE household_id = $1 AND user_id = $2
RETURNING id, household_id, user_id, role, joined_at`

// UpdateMemberRole changes a member's role within a household.
func (r *Repo) UpdateMemberRole(ctx context.Context, householdID, userID uuid.UUID, role domain.HouseholdRole) (*domain.HouseholdMember, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateMemberRoleSQL, householdID, userID, role.String())

	m, err := scanMember(row)
	if err != nil {
		return nil, postgres.MapError(err, "household_member", userID)
	}

	return m, nil
}

// ---------------------------------------------------------------------------
// Invitations
// ---------------------------------------------------------------------------

const invitationColumns = `id, household_id, invited_by, invited_email, status, created_at, expires_at`

const createInvitationSQL = `
INSERT INTO household_invitations (id, household_id, invited_by, invited_email, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + invitationColumns

// CreateInvitation records an email invitation into a household.
func (r *Repo) CreateInvitation(ctx context.Context, inv *domain.HouseholdInvitation) (*domain.HouseholdInvitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createInvitationSQL,
		inv.ID, inv.HouseholdID, inv.InvitedBy, inv.InvitedEmail,
		inv.Status.String(), inv.ExpiresAt,
	)

	created, err := scanInvitation(row)
	if err != nil {
		return nil, postgres.MapError(err, "household_invitation", inv.ID)
	}

	return created, nil
}

const getInvitationSQL = `
SELECT ` + invitationColumns + ` FROM household_invitations WHERE id = $1`

// GetInvitation returns an invitation by primary key.
func (r *Repo) GetInvitation(ctx context.Context, invitationID uuid.UUID) (*domain.HouseholdInvitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inv, err := scanInvitation(querier.QueryRow(ctx, getInvitationSQL, invitationID))
	if err != nil {
		return nil, postgres.MapError(err, "household_invitation", invitationID)
	}

	return inv, nil
}

const listPendingInvitationsSQL = `
SELECT ` + invitationColumns + `
FROM household_invitations
WHERE household_id = $1 AND status = 'pending'
ORDER BY created_at DESC`

// ListPending returns a household's pending invitations, newest first.
func (r *Repo) ListPending(ctx context.Context, householdID uuid.UUID) ([]*domain.HouseholdInvitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listPendingInvitationsSQL, householdID)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	defer rows.Close()

	return scanInvitations(rows)
}

const listPendingInvitationsByEmailSQL = `
SELECT ` + invitationColumns + `
FROM household_invitations
WHERE lower(invited_email) = lower($1) AND status = 'pending'
ORDER BY created_at DESC`

// ListPendingByEmail returns the pending invitations addressed to an email,
// newest first. Matching is case-insensitive.
func (r *Repo) ListPendingByEmail(ctx context.Context, email string) ([]*domain.HouseholdInvitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listPendingInvitationsByEmailSQL, email)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations by email: %w", err)
	}
	defer rows.Close()

	return scanInvitations(rows)
}

// The WHERE status = 'pending' guard makes terminal states immutable:
// zero rows affected means the invitation was already resolved.
const setInvitationStatusSQL = `
UPDATE household_invitations SET status = $2
WHERE id = $1 AND status = 'pending'
RETURNING ` + invitationColumns

// SetStatus transitions a pending invitation to a terminal status.
// Returns domain.ErrConflict if the invitation is no longer pending and
// domain.ErrNotFound if it does not exist.
func (r *Repo) SetStatus(ctx context.Context, invitationID uuid.UUID, status domain.InvitationStatus) (*domain.HouseholdInvitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setInvitationStatusSQL, invitationID, status.String())

	inv, err := scanInvitation(row)
	if err == nil {
		return inv, nil
	}

	// Distinguish "gone" from "already resolved".
	if _, getErr := r.GetInvitation(ctx, invitationID); getErr != nil {
		return nil, getErr
	}

	return nil, fmt.Errorf("household_invitation %s: %w", invitationID, domain.ErrConflict)
}

// ---------------------------------------------------------------------------
// Users projection
// ---------------------------------------------------------------------------

const ensureUserSQL = `
INSERT INTO users (id, email)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`

// EnsureUser records or refreshes the (id, email) pair seen on a verified
// token so member listings can resolve emails.
func (r *Repo) EnsureUser(ctx context.Context, userID uuid.UUID, email string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, ensureUserSQL, userID, email); err != nil {
		return postgres.MapError(err, "user", userID)
	}

	return nil
}

const getUserByEmailSQL = `
SELECT id, email, created_at FROM users WHERE lower(email) = lower($1)`

// GetUserByEmail resolves an email to a known user.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getUserByEmailSQL, email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return &u, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanHousehold(row pgx.Row) (*domain.Household, error) {
	var h domain.Household
	err := row.Scan(&h.ID, &h.Name, &h.Code, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func scanMember(row pgx.Row) (*domain.HouseholdMember, error) {
	var (
		m    domain.HouseholdMember
		role string
	)
	if err := row.Scan(&m.ID, &m.HouseholdID, &m.UserID, &role, &m.JoinedAt); err != nil {
		return nil, err
	}
	m.Role = domain.HouseholdRole(role)
	return &m, nil
}

func scanInvitation(row pgx.Row) (*domain.HouseholdInvitation, error) {
	var (
		inv    domain.HouseholdInvitation
		status string
	)
	err := row.Scan(&inv.ID, &inv.HouseholdID, &inv.InvitedBy, &inv.InvitedEmail,
		&status, &inv.CreatedAt, &inv.ExpiresAt)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.InvitationStatus(status)
	return &inv, nil
}

func scanInvitations(rows pgx.Rows) ([]*domain.HouseholdInvitation, error) {
	invitations := []*domain.HouseholdInvitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read invitations: %w", err)
	}
	return invitations, nil
}

const listMemberUserIDsSQL = `
SELECT user_id FROM household_members WHERE household_id = $1 ORDER BY joined_at`

// ListMemberUserIDs returns the user IDs of a household's members. Used to
// fan out recipe pool queries.
func (r *Repo) ListMemberUserIDs(ctx context.Context, householdID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listMemberUserIDsSQL, householdID)
	if err != nil {
		return nil, fmt.Errorf("list member user ids: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list member user ids: %w", err)
	}

	return ids, nil
}
