package rest

import "net/http"

// Handlers groups the REST handlers the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Recipes    *RecipeHandler
	Households *HouseholdHandler
	MealPlans  *MealPlanHandler
	Settings   *SettingsHandler
}

// NewRouter assembles the HTTP route table. Middleware is applied by the
// caller around the returned mux. imageDir, when non-empty, is served
// read-only under /images/ so stored recipe images resolve without a CDN.
func NewRouter(h Handlers, imageDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /recipes", h.Recipes.Create)
	mux.HandleFunc("GET /recipes", h.Recipes.ListMine)
	mux.HandleFunc("GET /recipes/household", h.Recipes.ListHousehold)
	mux.HandleFunc("GET /recipes/search", h.Recipes.Search)
	mux.HandleFunc("GET /recipes/liked", h.Recipes.ListLiked)
	mux.HandleFunc("GET /recipes/{id}", h.Recipes.Get)
	mux.HandleFunc("PUT /recipes/{id}", h.Recipes.Update)
	mux.HandleFunc("DELETE /recipes/{id}", h.Recipes.Delete)
	mux.HandleFunc("POST /recipes/{id}/like", h.Recipes.Like)
	mux.HandleFunc("DELETE /recipes/{id}/like", h.Recipes.Unlike)

	mux.HandleFunc("POST /households", h.Households.Create)
	mux.HandleFunc("POST /households/join", h.Households.Join)
	mux.HandleFunc("GET /households/me", h.Households.Get)
	mux.HandleFunc("PUT /households/me", h.Households.Rename)
	mux.HandleFunc("POST /households/leave", h.Households.Leave)
	mux.HandleFunc("DELETE /households/members/{userID}", h.Households.RemoveMember)
	mux.HandleFunc("PUT /households/members/{userID}/role", h.Households.ChangeMemberRole)
	mux.HandleFunc("POST /households/invitations", h.Households.Invite)
	mux.HandleFunc("GET /households/invitations", h.Households.ListInvitations)
	mux.HandleFunc("DELETE /households/invitations/{id}", h.Households.CancelInvitation)
	mux.HandleFunc("GET /invitations", h.Households.ListMyInvitations)
	mux.HandleFunc("POST /invitations/{id}/accept", h.Households.AcceptInvitation)
	mux.HandleFunc("POST /invitations/{id}/decline", h.Households.DeclineInvitation)

	mux.HandleFunc("POST /mealplans", h.MealPlans.Plan)
	mux.HandleFunc("GET /mealplans", h.MealPlans.List)
	mux.HandleFunc("DELETE /mealplans/{date}/{slot}", h.MealPlans.Remove)

	mux.HandleFunc("GET /settings", h.Settings.Get)
	mux.HandleFunc("PATCH /settings", h.Settings.Update)
	mux.HandleFunc("POST /settings/slots/{slot}/toggle", h.Settings.ToggleSlot)

	if imageDir != "" {
		fs := http.FileServer(http.Dir(imageDir))
		mux.Handle("GET /images/", http.StripPrefix("/images/", fs))
	}

	return mux
}
