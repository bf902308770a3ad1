package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ingredient is one line of a recipe's ingredient list. Quantity and unit are
// free-form strings ("2", "une pincée") — never parsed as numbers. An
// ingredient has no lifecycle of its own: it lives and dies with its recipe.
type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Recipe is a user-authored recipe. ImageURL either points at the blob store
// (durable, after upload) or at a local file URI still pending upload; the
// recipe service is the only place that resolves the latter into the former.
type Recipe struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	MealType    MealType
	IsSimple    bool
	Notes       *string
	Ingredients []Ingredient
	Equipment   []string
	Steps       []string
	PrepTime    int // minutes
	CookTime    int // minutes
	Servings    int
	Difficulty  Difficulty
	Category    string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// localImageScheme marks a not-yet-uploaded image reference.
const localImageScheme = "file://"

// HasLocalImage reports whether ImageURL references a local asset that still
// needs to be uploaded to the object store.
func (r *Recipe) HasLocalImage() bool {
	return r.ImageURL != nil && IsLocalImageURL(*r.ImageURL)
}

// IsLocalImageURL reports whether the URL is a local file URI.
func IsLocalImageURL(url string) bool {
	return strings.HasPrefix(url, localImageScheme)
}

// RecipeQuery filters a recipe search. Zero values mean "no filter";
// MealTypeAll matches every meal type.
type RecipeQuery struct {
	Text         string
	MealType     MealType
	Difficulty   Difficulty
	MaxTotalTime int // prep + cook, minutes
	Limit        int
}

// RecipeForm is the submission shape for creating or updating a recipe,
// everything of Recipe except server-assigned fields.
type RecipeForm struct {
	Title       string
	Description string
	MealType    MealType
	IsSimple    bool
	Notes       *string
	Ingredients []Ingredient
	Equipment   []string
	Steps       []string
	PrepTime    int
	CookTime    int
	Servings    int
	Difficulty  Difficulty
	Category    string
	ImageURL    *string
}

// Validate checks the submission invariants before anything touches the
// network. A simple recipe is exempt from the ingredients/steps requirement.
func (f *RecipeForm) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if !f.MealType.IsStorable() {
		errs = append(errs, FieldError{Field: "mealType", Message: "must be a concrete meal type"})
	}
	if !f.Difficulty.IsValid() {
		errs = append(errs, FieldError{Field: "difficulty", Message: "must be easy, medium or hard"})
	}
	if f.PrepTime < 0 {
		errs = append(errs, FieldError{Field: "prepTime", Message: "must not be negative"})
	}
	if f.CookTime < 0 {
		errs = append(errs, FieldError{Field: "cookTime", Message: "must not be negative"})
	}
	if f.Servings < 1 {
		errs = append(errs, FieldError{Field: "servings", Message: "must be positive"})
	}

	if !f.IsSimple {
		if !hasNamedIngredient(f.Ingredients) {
			errs = append(errs, FieldError{Field: "ingredients", Message: "at least one ingredient with a name is required"})
		}
		if !hasNonEmptyStep(f.Steps) {
			errs = append(errs, FieldError{Field: "steps", Message: "at least one step is required"})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func hasNamedIngredient(ingredients []Ingredient) bool {
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) != "" {
			return true
		}
	}
	return false
}

func hasNonEmptyStep(steps []string) bool {
	for _, s := range steps {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
