// Package recipe implements recipe management: owner-scoped CRUD with image
// upload compensation, likes, search and the household recipe pool.
package recipe

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

type recipeRepo interface {
	GetByID(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Recipe, error)
	ListByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]*domain.Recipe, error)
	Search(ctx context.Context, ownerID uuid.UUID, q domain.RecipeQuery) ([]*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Delete(ctx context.Context, ownerID, recipeID uuid.UUID) error

	Like(ctx context.Context, userID, recipeID uuid.UUID) error
	Unlike(ctx context.Context, userID, recipeID uuid.UUID) error
	ListLiked(ctx context.Context, userID uuid.UUID) ([]*domain.Recipe, error)
	ListLikedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type householdRepo interface {
	GetMembership(ctx context.Context, userID uuid.UUID) (*domain.HouseholdMember, error)
	ListMemberUserIDs(ctx context.Context, householdID uuid.UUID) ([]uuid.UUID, error)
}

type imageStore interface {
	Upload(ctx context.Context, userID, recipeID uuid.UUID, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Service provides recipe management operations.
type Service struct {
	recipes    recipeRepo
	households householdRepo
	images     imageStore
	log        *slog.Logger
}

// NewService creates a new Recipe service.
func NewService(
	log *slog.Logger,
	recipes recipeRepo,
	households householdRepo,
	images imageStore,
) *Service {
	return &Service{
		recipes:    recipes,
		households: households,
		images:     images,
		log:        log.With("service", "recipe"),
	}
}

// deleteImage removes a stored image, logging instead of failing: image
// cleanup never blocks the operation that triggered it.
func (s *Service) deleteImage(ctx context.Context, url string) {
	if url == "" || domain.IsLocalImageURL(url) {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		s.log.WarnContext(ctx, "failed to delete recipe image",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}
