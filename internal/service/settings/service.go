// Package settings implements per-user planner display preferences. Settings
// are provisioned lazily on first read and always keep at least one meal
// slot visible.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

type settingsRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Create(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error)
	Update(ctx context.Context, userID uuid.UUID, changes domain.SettingsChanges) (*domain.UserSettings, error)
}

// Service provides user settings operations.
type Service struct {
	settings settingsRepo
	log      *slog.Logger
}

// NewService creates a new Settings service.
func NewService(log *slog.Logger, settings settingsRepo) *Service {
	return &Service{
		settings: settings,
		log:      log.With("service", "settings"),
	}
}

// GetSettings returns the authenticated user's settings, provisioning the
// defaults on first read.
func (s *Service) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	current, err := s.settings.GetByUser(ctx, userID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	defaults := domain.DefaultUserSettings(userID)
	defaults.ID = uuid.New()

	created, err := s.settings.Create(ctx, &defaults)
	if err != nil {
		return nil, fmt.Errorf("provision settings: %w", err)
	}

	return created, nil
}

// UpdateSettings applies a partial change to the authenticated user's
// settings. A change that would hide every slot is rejected whole.
func (s *Service) UpdateSettings(ctx context.Context, changes domain.SettingsChanges) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if next := changes.Apply(*current); !next.AnySlotVisible() {
		return nil, domain.NewValidationError("slots", "at least one meal slot must stay visible")
	}

	updated, err := s.settings.Update(ctx, userID, changes)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.String("user_id", userID.String()),
	)

	return updated, nil
}

// ToggleSlot flips the visibility of one planner slot, holding the
// at-least-one-visible floor.
func (s *Service) ToggleSlot(ctx context.Context, slot domain.MealSlot) (*domain.UserSettings, error) {
	if !slot.IsValid() {
		return nil, domain.NewValidationError("slot", "must be breakfast, lunch, dinner or snack")
	}

	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	flipped := !current.ShowsSlot(slot)
	changes := domain.SettingsChanges{}
	switch slot {
	case domain.MealSlotBreakfast:
		changes.ShowBreakfast = &flipped
	case domain.MealSlotLunch:
		changes.ShowLunch = &flipped
	case domain.MealSlotDinner:
		changes.ShowDinner = &flipped
	case domain.MealSlotSnack:
		changes.ShowSnack = &flipped
	}

	return s.UpdateSettings(ctx, changes)
}
