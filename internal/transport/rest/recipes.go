package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/recipe"
)

// recipeService defines the minimal interface needed by RecipeHandler.
type recipeService interface {
	CreateRecipe(ctx context.Context, input recipe.CreateRecipeInput) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, input recipe.UpdateRecipeInput) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	GetRecipe(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error)
	ListMyRecipes(ctx context.Context) ([]*domain.Recipe, error)
	ListHouseholdRecipes(ctx context.Context) ([]*domain.Recipe, error)
	SearchRecipes(ctx context.Context, query domain.RecipeQuery) ([]*domain.Recipe, error)
	LikeRecipe(ctx context.Context, recipeID uuid.UUID) error
	UnlikeRecipe(ctx context.Context, recipeID uuid.UUID) error
	ListLikedRecipes(ctx context.Context) ([]*domain.Recipe, error)
}

// RecipeHandler serves recipe REST endpoints.
type RecipeHandler struct {
	svc recipeService
	log *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(svc recipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: logger.With("handler", "recipe")}
}

// maxImageSize bounds a multipart recipe submission.
const maxImageSize = 10 << 20

// Create handles POST /recipes. The body is either plain JSON or
// multipart/form-data with a "data" JSON part and an optional "image" file.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeRecipeSubmission(w, r)
	if !ok {
		return
	}

	created, err := h.svc.CreateRecipe(r.Context(), recipe.CreateRecipeInput{
		Form:  input.form,
		Image: input.image,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecipeResponse(created))
}

// Update handles PUT /recipes/{id}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	input, ok := h.decodeRecipeSubmission(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateRecipe(r.Context(), recipe.UpdateRecipeInput{
		RecipeID: recipeID,
		Form:     input.form,
		Image:    input.image,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecipeResponse(updated))
}

// Delete handles DELETE /recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRecipe(r.Context(), recipeID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.svc.GetRecipe(r.Context(), recipeID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecipeResponse(found))
}

// ListMine handles GET /recipes.
func (h *RecipeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListMyRecipes(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecipeList(recipes))
}

// ListHousehold handles GET /recipes/household.
func (h *RecipeHandler) ListHousehold(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListHouseholdRecipes(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecipeList(recipes))
}

// Search handles GET /recipes/search?q=&meal_type=&difficulty=&max_total_time=&limit=.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.RecipeQuery{
		Text:       strings.TrimSpace(q.Get("q")),
		MealType:   domain.MealType(q.Get("meal_type")),
		Difficulty: domain.Difficulty(q.Get("difficulty")),
	}
	if v := q.Get("max_total_time"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "max_total_time must be an integer")
			return
		}
		query.MaxTotalTime = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		query.Limit = n
	}

	recipes, err := h.svc.SearchRecipes(r.Context(), query)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecipeList(recipes))
}

// Like handles POST /recipes/{id}/like.
func (h *RecipeHandler) Like(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.LikeRecipe(r.Context(), recipeID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unlike handles DELETE /recipes/{id}/like.
func (h *RecipeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.UnlikeRecipe(r.Context(), recipeID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLiked handles GET /recipes/liked.
func (h *RecipeHandler) ListLiked(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListLikedRecipes(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecipeList(recipes))
}

type recipeSubmission struct {
	form  domain.RecipeForm
	image *recipe.ImageUpload
}

func (h *RecipeHandler) decodeRecipeSubmission(w http.ResponseWriter, r *http.Request) (recipeSubmission, bool) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return recipeSubmission{}, false
		}

		var form recipeForm
		if err := json.Unmarshal([]byte(r.FormValue("data")), &form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid recipe payload")
			return recipeSubmission{}, false
		}

		sub := recipeSubmission{form: form.toDomain()}
		if file, header, err := r.FormFile("image"); err == nil {
			sub.image = &recipe.ImageUpload{
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			}
		}
		return sub, true
	}

	var form recipeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return recipeSubmission{}, false
	}
	return recipeSubmission{form: form.toDomain()}, true
}

// pathUUID parses a UUID path value, answering 400 on garbage.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
