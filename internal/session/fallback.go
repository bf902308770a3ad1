package session

import (
	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// placeholderRecipes is the degraded-mode dataset installed when the initial
// recipe load fails, so the swipe deck and collection views stay usable
// offline. The ids are fixed so repeated fallbacks do not duplicate entries.
func placeholderRecipes() []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:          uuid.MustParse("6f1d2c7a-0b54-4f1e-9a92-3f6a1c1e0001"),
			Title:       "Spaghetti Aglio e Olio",
			Description: "Garlic, olive oil, chili flakes, done in fifteen minutes.",
			MealType:    domain.MealTypeDinner,
			Ingredients: []domain.Ingredient{
				{ID: "1", Name: "Spaghetti", Quantity: "200", Unit: "g"},
				{ID: "2", Name: "Garlic", Quantity: "4", Unit: "cloves"},
				{ID: "3", Name: "Olive oil", Quantity: "4", Unit: "tbsp"},
			},
			Steps: []string{
				"Cook the spaghetti in salted water.",
				"Gently fry sliced garlic in olive oil.",
				"Toss the pasta with the oil and a ladle of pasta water.",
			},
			PrepTime:   5,
			CookTime:   10,
			Servings:   2,
			Difficulty: domain.DifficultyEasy,
			Category:   "pasta",
		},
		{
			ID:          uuid.MustParse("6f1d2c7a-0b54-4f1e-9a92-3f6a1c1e0002"),
			Title:       "Overnight Oats",
			Description: "Oats soaked in milk with fruit, ready when you wake up.",
			MealType:    domain.MealTypeBreakfast,
			IsSimple:    true,
			PrepTime:    5,
			CookTime:    0,
			Servings:    1,
			Difficulty:  domain.DifficultyEasy,
			Category:    "breakfast",
		},
		{
			ID:          uuid.MustParse("6f1d2c7a-0b54-4f1e-9a92-3f6a1c1e0003"),
			Title:       "Chicken Caesar Salad",
			Description: "Grilled chicken over romaine with parmesan and croutons.",
			MealType:    domain.MealTypeLunch,
			Ingredients: []domain.Ingredient{
				{ID: "1", Name: "Chicken breast", Quantity: "1", Unit: ""},
				{ID: "2", Name: "Romaine lettuce", Quantity: "1", Unit: "head"},
				{ID: "3", Name: "Parmesan", Quantity: "30", Unit: "g"},
			},
			Steps: []string{
				"Grill the chicken and slice it.",
				"Toss the lettuce with dressing, chicken and parmesan.",
			},
			PrepTime:   10,
			CookTime:   15,
			Servings:   2,
			Difficulty: domain.DifficultyMedium,
			Category:   "salad",
		},
	}
}
