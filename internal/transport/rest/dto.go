package rest

import (
	"time"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// Wire shapes use underscore_case field names; this package is the only
// translation point between them and the domain types.

type ingredientPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type recipeForm struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	MealType    string              `json:"meal_type"`
	IsSimple    bool                `json:"is_simple"`
	Notes       *string             `json:"notes,omitempty"`
	Ingredients []ingredientPayload `json:"ingredients"`
	Equipment   []string            `json:"equipment,omitempty"`
	Steps       []string            `json:"steps"`
	PrepTime    int                 `json:"prep_time"`
	CookTime    int                 `json:"cook_time"`
	Servings    int                 `json:"servings"`
	Difficulty  string              `json:"difficulty"`
	Category    string              `json:"category"`
	ImageURL    *string             `json:"image_url,omitempty"`
}

func (f recipeForm) toDomain() domain.RecipeForm {
	ingredients := make([]domain.Ingredient, 0, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		ingredients = append(ingredients, domain.Ingredient{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return domain.RecipeForm{
		Title:       f.Title,
		Description: f.Description,
		MealType:    domain.MealType(f.MealType),
		IsSimple:    f.IsSimple,
		Notes:       f.Notes,
		Ingredients: ingredients,
		Equipment:   f.Equipment,
		Steps:       f.Steps,
		PrepTime:    f.PrepTime,
		CookTime:    f.CookTime,
		Servings:    f.Servings,
		Difficulty:  domain.Difficulty(f.Difficulty),
		Category:    f.Category,
		ImageURL:    f.ImageURL,
	}
}

type recipeResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	MealType    string              `json:"meal_type"`
	IsSimple    bool                `json:"is_simple"`
	Notes       *string             `json:"notes,omitempty"`
	Ingredients []ingredientPayload `json:"ingredients"`
	Equipment   []string            `json:"equipment,omitempty"`
	Steps       []string            `json:"steps"`
	PrepTime    int                 `json:"prep_time"`
	CookTime    int                 `json:"cook_time"`
	Servings    int                 `json:"servings"`
	Difficulty  string              `json:"difficulty"`
	Category    string              `json:"category"`
	ImageURL    *string             `json:"image_url,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	ingredients := make([]ingredientPayload, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ingredientPayload{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return recipeResponse{
		ID:          r.ID.String(),
		UserID:      r.OwnerID.String(),
		Title:       r.Title,
		Description: r.Description,
		MealType:    r.MealType.String(),
		IsSimple:    r.IsSimple,
		Notes:       r.Notes,
		Ingredients: ingredients,
		Equipment:   r.Equipment,
		Steps:       r.Steps,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty.String(),
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRecipeList(recipes []*domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipeResponse(r))
	}
	return out
}

type householdResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func toHouseholdResponse(h *domain.Household) householdResponse {
	return householdResponse{
		ID:        h.ID.String(),
		Name:      h.Name,
		Code:      h.Code,
		CreatedBy: h.CreatedBy.String(),
		CreatedAt: h.CreatedAt,
	}
}

type memberResponse struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func toMemberList(members []*domain.HouseholdMember) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			UserID:   m.UserID.String(),
			Email:    m.UserEmail,
			Role:     m.Role.String(),
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

type invitationResponse struct {
	ID           string    `json:"id"`
	HouseholdID  string    `json:"household_id"`
	InvitedBy    string    `json:"invited_by"`
	InvitedEmail string    `json:"invited_email"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func toInvitationResponse(inv *domain.HouseholdInvitation) invitationResponse {
	return invitationResponse{
		ID:           inv.ID.String(),
		HouseholdID:  inv.HouseholdID.String(),
		InvitedBy:    inv.InvitedBy.String(),
		InvitedEmail: inv.InvitedEmail,
		Status:       inv.Status.String(),
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
	}
}

func toInvitationList(invitations []*domain.HouseholdInvitation) []invitationResponse {
	out := make([]invitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, toInvitationResponse(inv))
	}
	return out
}

type plannedMealResponse struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	Date      string    `json:"date"`
	Slot      string    `json:"meal_type"`
	CreatedAt time.Time `json:"created_at"`
}

func toPlannedMealResponse(m *domain.PlannedMeal) plannedMealResponse {
	return plannedMealResponse{
		ID:        m.ID.String(),
		RecipeID:  m.RecipeID.String(),
		Date:      m.Date,
		Slot:      m.Slot.String(),
		CreatedAt: m.CreatedAt,
	}
}

func toPlannedMealList(meals []*domain.PlannedMeal) []plannedMealResponse {
	out := make([]plannedMealResponse, 0, len(meals))
	for _, m := range meals {
		out = append(out, toPlannedMealResponse(m))
	}
	return out
}

type settingsResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ShowBreakfast bool      `json:"show_breakfast"`
	ShowLunch     bool      `json:"show_lunch"`
	ShowDinner    bool      `json:"show_dinner"`
	ShowSnack     bool      `json:"show_snack"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	return settingsResponse{
		ID:            s.ID.String(),
		UserID:        s.UserID.String(),
		ShowBreakfast: s.ShowBreakfast,
		ShowLunch:     s.ShowLunch,
		ShowDinner:    s.ShowDinner,
		ShowSnack:     s.ShowSnack,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
