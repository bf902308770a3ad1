package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/mealplan"
)

// mealPlanService defines the minimal interface needed by MealPlanHandler.
type mealPlanService interface {
	PlanMeal(ctx context.Context, input mealplan.PlanMealInput) (*domain.PlannedMeal, error)
	RemoveMeal(ctx context.Context, ref mealplan.SlotRef) error
	MealsForDate(ctx context.Context, date string) ([]*domain.PlannedMeal, error)
	ListMeals(ctx context.Context) ([]*domain.PlannedMeal, error)
	MealsInRange(ctx context.Context, from, to string) ([]*domain.PlannedMeal, error)
}

// MealPlanHandler serves planner REST endpoints.
type MealPlanHandler struct {
	svc mealPlanService
	log *slog.Logger
}

// NewMealPlanHandler creates a MealPlanHandler.
func NewMealPlanHandler(svc mealPlanService, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{svc: svc, log: logger.With("handler", "mealplan")}
}

type planMealRequest struct {
	RecipeID string `json:"recipe_id"`
	Date     string `json:"date"`
	Slot     string `json:"meal_type"`
}

// Plan handles POST /mealplans.
func (h *MealPlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe_id")
		return
	}

	planned, err := h.svc.PlanMeal(r.Context(), mealplan.PlanMealInput{
		RecipeID: recipeID,
		Date:     req.Date,
		Slot:     domain.MealSlot(req.Slot),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlannedMealResponse(planned))
}

// Remove handles DELETE /mealplans/{date}/{slot}.
func (h *MealPlanHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ref := mealplan.SlotRef{
		Date: r.PathValue("date"),
		Slot: domain.MealSlot(r.PathValue("slot")),
	}

	if err := h.svc.RemoveMeal(r.Context(), ref); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /mealplans with optional date= or from=&to= filters.
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		meals []*domain.PlannedMeal
		err   error
	)
	switch {
	case q.Get("date") != "":
		meals, err = h.svc.MealsForDate(r.Context(), q.Get("date"))
	case q.Get("from") != "" || q.Get("to") != "":
		meals, err = h.svc.MealsInRange(r.Context(), q.Get("from"), q.Get("to"))
	default:
		meals, err = h.svc.ListMeals(r.Context())
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlannedMealList(meals))
}
