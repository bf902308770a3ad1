// Package household implements household groups: creation with generated
// join codes, joining and leaving, member administration and email
// invitations. A user belongs to at most one household at a time.
package household

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

type householdRepo interface {
	Create(ctx context.Context, h *domain.Household) (*domain.Household, error)
	GetByID(ctx context.Context, householdID uuid.UUID) (*domain.Household, error)
	GetByCode(ctx context.Context, code string) (*domain.Household, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	UpdateName(ctx context.Context, householdID uuid.UUID, name string) (*domain.Household, error)
	Delete(ctx context.Context, householdID uuid.UUID) error

	AddMember(ctx context.Context, m *domain.HouseholdMember) (*domain.HouseholdMember, error)
	GetMembership(ctx context.Context, userID uuid.UUID) (*domain.HouseholdMember, error)
	ListMembers(ctx context.Context, householdID uuid.UUID) ([]*domain.HouseholdMember, error)
	CountMembers(ctx context.Context, householdID uuid.UUID) (int, error)
	RemoveMember(ctx context.Context, householdID, userID uuid.UUID) error
	UpdateMemberRole(ctx context.Context, householdID, userID uuid.UUID, role domain.HouseholdRole) (*domain.HouseholdMember, error)

	CreateInvitation(ctx context.Context, inv *domain.HouseholdInvitation) (*domain.HouseholdInvitation, error)
	GetInvitation(ctx context.Context, invitationID uuid.UUID) (*domain.HouseholdInvitation, error)
	ListPending(ctx context.Context, householdID uuid.UUID) ([]*domain.HouseholdInvitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]*domain.HouseholdInvitation, error)
	SetStatus(ctx context.Context, invitationID uuid.UUID, status domain.InvitationStatus) (*domain.HouseholdInvitation, error)

	EnsureUser(ctx context.Context, userID uuid.UUID, email string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides household management operations.
type Service struct {
	households      householdRepo
	tx              txManager
	log             *slog.Logger
	inviteTTL       time.Duration
	codeMaxAttempts int
}

// NewService creates a new Household service. inviteTTL bounds invitation
// lifetime; codeMaxAttempts bounds join code generation retries.
func NewService(
	log *slog.Logger,
	households householdRepo,
	tx txManager,
	inviteTTL time.Duration,
	codeMaxAttempts int,
) *Service {
	return &Service{
		households:      households,
		tx:              tx,
		log:             log.With("service", "household"),
		inviteTTL:       inviteTTL,
		codeMaxAttempts: codeMaxAttempts,
	}
}

// HouseholdView is a household together with its member list.
type HouseholdView struct {
	Household *domain.Household
	Members   []*domain.HouseholdMember
}

// rememberEmail records the caller's (id, email) pair when the token carried
// an email claim, so member listings can resolve it later. Best effort.
func (s *Service) rememberEmail(ctx context.Context, userID uuid.UUID, email string) {
	if email == "" {
		return
	}
	if err := s.households.EnsureUser(ctx, userID, email); err != nil {
		s.log.WarnContext(ctx, "failed to record user email",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
