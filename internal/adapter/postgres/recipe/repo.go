// Package recipe implements the Recipe repository using PostgreSQL.
// It provides owner-scoped CRUD for recipes, the liked_recipes join table,
// and a dynamic search query built with squirrel.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tboivin/swipemeal-backend/internal/adapter/postgres"
	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// Repo provides recipe persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new recipe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const recipeColumns = `
    id, user_id, title, description, meal_type, is_simple, notes, image_url,
    prep_time, cook_time, servings, difficulty, category,
    ingredients, equipment, steps, created_at, updated_at`

// recipeColumnList mirrors recipeColumns for squirrel-built queries.
// Order must match scanRecipe.
var recipeColumnList = []string{
	"id", "user_id", "title", "description", "meal_type", "is_simple",
	"notes", "image_url", "prep_time", "cook_time", "servings",
	"difficulty", "category", "ingredients", "equipment", "steps",
	"created_at", "updated_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT` + recipeColumns + `
FROM recipes
WHERE id = $1`

// GetByID returns a recipe by primary key. Recipes are readable by any
// authenticated user (household views depend on this); writes stay
// owner-scoped.
func (r *Repo) GetByID(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, recipeID)
	recipe, err := scanRecipe(row)
	if err != nil {
		return nil, postgres.MapError(err, "recipe", recipeID)
	}

	return recipe, nil
}

const listByOwnerSQL = `
SELECT` + recipeColumns + `
FROM recipes
WHERE user_id = $1
ORDER BY created_at DESC`

// ListByOwner returns all recipes owned by a user, newest first.
// Returns an empty slice (not nil) when the user has none.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Recipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

const listByOwnersSQL = `
SELECT` + recipeColumns + `
FROM recipes
WHERE user_id = ANY($1::uuid[])
ORDER BY created_at DESC`

// ListByOwners returns recipes owned by any of the given users, newest first.
// Used to assemble the household recipe pool in one round trip.
func (r *Repo) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]*domain.Recipe, error) {
	if len(ownerIDs) == 0 {
		return []*domain.Recipe{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByOwnersSQL, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("list recipes by owners: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// Search returns a user's recipes matching the given filters, newest first.
// All filters are optional; an empty query returns everything ListByOwner would.
func (r *Repo) Search(ctx context.Context, ownerID uuid.UUID, q domain.RecipeQuery) ([]*domain.Recipe, error) {
	builder := psql.
		Select(recipeColumnList...).
		From("recipes").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC")

	if term := strings.TrimSpace(q.Text); term != "" {
		pattern := "%" + term + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.Expr("ingredients::text ILIKE ?", pattern),
		})
	}
	if q.MealType != "" && q.MealType != domain.MealTypeAll {
		builder = builder.Where(sq.Eq{"meal_type": q.MealType.String()})
	}
	if q.Difficulty != "" {
		builder = builder.Where(sq.Eq{"difficulty": q.Difficulty.String()})
	}
	if q.MaxTotalTime > 0 {
		builder = builder.Where(sq.LtOrEq{"prep_time + cook_time": q.MaxTotalTime})
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO recipes (
    id, user_id, title, description, meal_type, is_simple, notes, image_url,
    prep_time, cook_time, servings, difficulty, category,
    ingredients, equipment, steps
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING` + recipeColumns

// Create inserts a new recipe and returns the persisted row.
func (r *Repo) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ingredients, equipment, steps, err := marshalLists(recipe)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		recipe.ID, recipe.OwnerID, recipe.Title, recipe.Description,
		recipe.MealType.String(), recipe.IsSimple, recipe.Notes, recipe.ImageURL,
		recipe.PrepTime, recipe.CookTime, recipe.Servings,
		recipe.Difficulty.String(), recipe.Category,
		ingredients, equipment, steps,
	)

	created, err := scanRecipe(row)
	if err != nil {
		return nil, postgres.MapError(err, "recipe", recipe.ID)
	}

	return created, nil
}

const updateSQL = `
UPDATE recipes SET
    title = $3, description = $4, meal_type = $5, is_simple = $6, notes = $7,
    image_url = $8, prep_time = $9, cook_time = $10, servings = $11,
    difficulty = $12, category = $13, ingredients = $14, equipment = $15,
    steps = $16, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING` + recipeColumns

// Update replaces a recipe's mutable fields. Returns domain.ErrNotFound if
// the recipe does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ingredients, equipment, steps, err := marshalLists(recipe)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		recipe.ID, recipe.OwnerID, recipe.Title, recipe.Description,
		recipe.MealType.String(), recipe.IsSimple, recipe.Notes, recipe.ImageURL,
		recipe.PrepTime, recipe.CookTime, recipe.Servings,
		recipe.Difficulty.String(), recipe.Category,
		ingredients, equipment, steps,
	)

	updated, err := scanRecipe(row)
	if err != nil {
		return nil, postgres.MapError(err, "recipe", recipe.ID)
	}

	return updated, nil
}

const deleteSQL = `DELETE FROM recipes WHERE id = $1 AND user_id = $2`

// Delete removes a recipe. Likes and planned meals referencing it cascade.
// Returns domain.ErrNotFound if the recipe does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, ownerID, recipeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, recipeID, ownerID)
	if err != nil {
		return postgres.MapError(err, "recipe", recipeID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Likes
// ---------------------------------------------------------------------------

// Re-liking is a no-op so the swipe deck can replay a like without erroring.
const likeSQL = `
INSERT INTO liked_recipes (user_id, recipe_id)
VALUES ($1, $2)
ON CONFLICT (user_id, recipe_id) DO NOTHING`

// Like marks a recipe as liked by the user. Idempotent.
// Returns domain.ErrNotFound if the recipe does not exist.
func (r *Repo) Like(ctx context.Context, userID, recipeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, likeSQL, userID, recipeID); err != nil {
		return postgres.MapError(err, "liked_recipe", recipeID)
	}

	return nil
}

const unlikeSQL = `DELETE FROM liked_recipes WHERE user_id = $1 AND recipe_id = $2`

// Unlike removes a like. Idempotent: unliking a recipe that was never liked
// is not an error.
func (r *Repo) Unlike(ctx context.Context, userID, recipeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlikeSQL, userID, recipeID); err != nil {
		return postgres.MapError(err, "liked_recipe", recipeID)
	}

	return nil
}

const listLikedSQL = `
SELECT
    r.id, r.user_id, r.title, r.description, r.meal_type, r.is_simple,
    r.notes, r.image_url, r.prep_time, r.cook_time, r.servings,
    r.difficulty, r.category, r.ingredients, r.equipment, r.steps,
    r.created_at, r.updated_at
FROM liked_recipes lr
JOIN recipes r ON r.id = lr.recipe_id
WHERE lr.user_id = $1
ORDER BY lr.created_at DESC`

// ListLiked returns the recipes a user has liked, most recently liked first.
func (r *Repo) ListLiked(ctx context.Context, userID uuid.UUID) ([]*domain.Recipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listLikedSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

const listLikedIDsSQL = `
SELECT recipe_id FROM liked_recipes WHERE user_id = $1 ORDER BY created_at DESC`

// ListLikedIDs returns just the IDs of a user's liked recipes, most recent
// first. Used to seed the session store without pulling full rows.
func (r *Repo) ListLikedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listLikedIDsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked recipe ids: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked recipe id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list liked recipe ids: %w", err)
	}

	return ids, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var (
		rec         domain.Recipe
		mealType    string
		difficulty  string
		ingredients []byte
		equipment   []byte
		steps       []byte
	)

	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.Title, &rec.Description, &mealType,
		&rec.IsSimple, &rec.Notes, &rec.ImageURL,
		&rec.PrepTime, &rec.CookTime, &rec.Servings, &difficulty, &rec.Category,
		&ingredients, &equipment, &steps, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.MealType = domain.MealType(mealType)
	rec.Difficulty = domain.Difficulty(difficulty)

	if err := json.Unmarshal(ingredients, &rec.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	if err := json.Unmarshal(equipment, &rec.Equipment); err != nil {
		return nil, fmt.Errorf("decode equipment: %w", err)
	}
	if err := json.Unmarshal(steps, &rec.Steps); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}

	return &rec, nil
}

func scanRecipes(rows pgx.Rows) ([]*domain.Recipe, error) {
	recipes := []*domain.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	return recipes, nil
}

func marshalLists(recipe *domain.Recipe) (ingredients, equipment, steps []byte, err error) {
	if ingredients, err = json.Marshal(orEmpty(recipe.Ingredients)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode ingredients: %w", err)
	}
	if equipment, err = json.Marshal(orEmpty(recipe.Equipment)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode equipment: %w", err)
	}
	if steps, err = json.Marshal(orEmpty(recipe.Steps)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode steps: %w", err)
	}
	return ingredients, equipment, steps, nil
}

// orEmpty keeps nil slices out of the JSONB columns ("[]" instead of "null").
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
