package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, changes domain.SettingsChanges) (*domain.UserSettings, error)
	ToggleSlot(ctx context.Context, slot domain.MealSlot) (*domain.UserSettings, error)
}

// SettingsHandler serves user settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(current))
}

type updateSettingsRequest struct {
	ShowBreakfast *bool `json:"show_breakfast,omitempty"`
	ShowLunch     *bool `json:"show_lunch,omitempty"`
	ShowDinner    *bool `json:"show_dinner,omitempty"`
	ShowSnack     *bool `json:"show_snack,omitempty"`
}

// Update handles PATCH /settings. Absent fields keep their current value.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateSettings(r.Context(), domain.SettingsChanges{
		ShowBreakfast: req.ShowBreakfast,
		ShowLunch:     req.ShowLunch,
		ShowDinner:    req.ShowDinner,
		ShowSnack:     req.ShowSnack,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}

// ToggleSlot handles POST /settings/slots/{slot}/toggle.
func (h *SettingsHandler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	updated, err := h.svc.ToggleSlot(r.Context(), domain.MealSlot(r.PathValue("slot")))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}
