// Package settings implements the UserSettings repository using PostgreSQL.
package settings

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tboivin/swipemeal-backend/internal/adapter/postgres"
	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const settingsColumns = `id, user_id, show_breakfast, show_lunch, show_dinner, show_snack, created_at, updated_at`

const getByUserSQL = `
SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`

// GetByUser returns the user's settings row, or domain.ErrNotFound if the
// user has never had one provisioned.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSettings(querier.QueryRow(ctx, getByUserSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return s, nil
}

// ON CONFLICT keeps concurrent first reads from racing each other: whoever
// loses the insert still gets the existing row back.
const createSQL = `
INSERT INTO user_settings (id, user_id, show_breakfast, show_lunch, show_dinner, show_snack)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING ` + settingsColumns

// Create inserts a settings row, returning the existing one if the user
// already has settings.
func (r *Repo) Create(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		s.ID, s.UserID, s.ShowBreakfast, s.ShowLunch, s.ShowDinner, s.ShowSnack,
	)

	created, err := scanSettings(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", s.UserID)
	}

	return created, nil
}

// Update applies a partial change to the user's settings. Nil fields are
// left untouched. Returns domain.ErrNotFound if no settings row exists.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, changes domain.SettingsChanges) (*domain.UserSettings, error) {
	builder := psql.
		Update("user_settings").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + settingsColumns)

	if changes.ShowBreakfast != nil {
		builder = builder.Set("show_breakfast", *changes.ShowBreakfast)
	}
	if changes.ShowLunch != nil {
		builder = builder.Set("show_lunch", *changes.ShowLunch)
	}
	if changes.ShowDinner != nil {
		builder = builder.Set("show_dinner", *changes.ShowDinner)
	}
	if changes.ShowSnack != nil {
		builder = builder.Set("show_snack", *changes.ShowSnack)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build settings update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSettings(querier.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return s, nil
}

func scanSettings(row pgx.Row) (*domain.UserSettings, error) {
	var s domain.UserSettings
	err := row.Scan(&s.ID, &s.UserID, &s.ShowBreakfast, &s.ShowLunch,
		&s.ShowDinner, &s.ShowSnack, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
