package household

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// JoinByCode attaches the authenticated user to the household behind a join
// code. The code is matched case and whitespace insensitively; a code that
// matches nothing yields domain.ErrInvalidCode rather than a bare not-found.
func (s *Service) JoinByCode(ctx context.Context, code string) (*domain.Household, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	normalized := domain.NormalizeHouseholdCode(code)
	if len(normalized) != domain.HouseholdCodeLength {
		return nil, fmt.Errorf("code %q: %w", code, domain.ErrInvalidCode)
	}

	h, err := s.households.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("code %q: %w", normalized, domain.ErrInvalidCode)
		}
		return nil, fmt.Errorf("get household by code: %w", err)
	}

	s.rememberEmail(ctx, userID, ctxutil.UserEmailFromCtx(ctx))

	_, err = s.households.AddMember(ctx, &domain.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: h.ID,
		UserID:      userID,
		Role:        domain.HouseholdRoleMember,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("user already in a household: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.log.InfoContext(ctx, "household joined",
		slog.String("user_id", userID.String()),
		slog.String("household_id", h.ID.String()),
	)

	return h, nil
}
