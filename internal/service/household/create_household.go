package household

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

// CreateHousehold creates a household with a fresh join code and attaches
// the authenticated user as its owner. A user already in a household cannot
// create another one.
func (s *Service) CreateHousehold(ctx context.Context, name string) (*domain.Household, error) {
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

	if _, err := s.households.GetMembership(ctx, userID); err == nil {
		return nil, fmt.Errorf("user already in a household: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	s.rememberEmail(ctx, userID, ctxutil.UserEmailFromCtx(ctx))

	// Household row and owner membership land together or not at all.
	var created *domain.Household
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.households.Create(txCtx, &domain.Household{
			ID:        uuid.New(),
			Name:      name,
			Code:      code,
			CreatedBy: userID,
		})
		if txErr != nil {
			return fmt.Errorf("create household: %w", txErr)
		}

		_, txErr = s.households.AddMember(txCtx, &domain.HouseholdMember{
			ID:          uuid.New(),
			HouseholdID: created.ID,
			UserID:      userID,
			Role:        domain.HouseholdRoleOwner,
		})
		if txErr != nil {
			return fmt.Errorf("attach owner: %w", txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "household created",
		slog.String("user_id", userID.String()),
		slog.String("household_id", created.ID.String()),
		slog.String("code", created.Code),
	)

	return created, nil
}
