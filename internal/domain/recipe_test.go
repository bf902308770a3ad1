package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() RecipeForm {
	return RecipeForm{
		Title:       "Pasta",
		Description: "Weeknight pasta",
		MealType:    MealTypeDinner,
		Ingredients: []Ingredient{{ID: "1", Name: "Spaghetti", Quantity: "200", Unit: "g"}},
		Steps:       []string{"Boil water", "Cook pasta"},
		PrepTime:    5,
		CookTime:    12,
		Servings:    2,
		Difficulty:  DifficultyEasy,
		Category:    "Italian",
	}
}

func TestRecipeForm_Validate_OK(t *testing.T) {
	t.Parallel()

	f := validForm()
	require.NoError(t, f.Validate())
}

func TestRecipeForm_Validate_NonSimpleNeedsIngredientsAndSteps(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.IsSimple = false
	f.Ingredients = nil
	f.Steps = nil

	err := f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "ingredients")
	assert.Contains(t, fields, "steps")
}

func TestRecipeForm_Validate_SimpleSkipsCompleteness(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.IsSimple = true
	f.Ingredients = nil
	f.Steps = nil

	require.NoError(t, f.Validate())
}

func TestRecipeForm_Validate_BlankIngredientNamesDoNotCount(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.Ingredients = []Ingredient{{ID: "1", Name: "   "}}
	f.Steps = []string{""}

	err := f.Validate()
	require.ErrorIs(t, err, ErrValidation)
}

func TestRecipeForm_Validate_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*RecipeForm)
		field  string
	}{
		{"empty title", func(f *RecipeForm) { f.Title = "  " }, "title"},
		{"meal type all", func(f *RecipeForm) { f.MealType = MealTypeAll }, "mealType"},
		{"unknown meal type", func(f *RecipeForm) { f.MealType = "brunch" }, "mealType"},
		{"bad difficulty", func(f *RecipeForm) { f.Difficulty = "impossible" }, "difficulty"},
		{"negative prep", func(f *RecipeForm) { f.PrepTime = -1 }, "prepTime"},
		{"negative cook", func(f *RecipeForm) { f.CookTime = -5 }, "cookTime"},
		{"zero servings", func(f *RecipeForm) { f.Servings = 0 }, "servings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := validForm()
			tt.mutate(&f)

			err := f.Validate()
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestRecipe_HasLocalImage(t *testing.T) {
	t.Parallel()

	local := "file:///tmp/photo.jpg"
	remote := "https://cdn.example.com/u/r.jpg"

	r := Recipe{ImageURL: &local}
	assert.True(t, r.HasLocalImage())

	r.ImageURL = &remote
	assert.False(t, r.HasLocalImage())

	r.ImageURL = nil
	assert.False(t, r.HasLocalImage())
}
