package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tboivin/swipemeal-backend/internal/domain"
	"github.com/tboivin/swipemeal-backend/internal/service/household"
)

// householdService defines the minimal interface needed by HouseholdHandler.
type householdService interface {
	CreateHousehold(ctx context.Context, name string) (*domain.Household, error)
	JoinByCode(ctx context.Context, code string) (*domain.Household, error)
	LeaveHousehold(ctx context.Context) error
	GetMyHousehold(ctx context.Context) (*household.HouseholdView, error)
	RenameHousehold(ctx context.Context, name string) (*domain.Household, error)
	RemoveMember(ctx context.Context, targetUserID uuid.UUID) error
	ChangeMemberRole(ctx context.Context, targetUserID uuid.UUID, role domain.HouseholdRole) (*domain.HouseholdMember, error)
	InviteMember(ctx context.Context, email string) (*domain.HouseholdInvitation, error)
	ListInvitations(ctx context.Context) ([]*domain.HouseholdInvitation, error)
	ListMyInvitations(ctx context.Context) ([]*domain.HouseholdInvitation, error)
	AcceptInvitation(ctx context.Context, invitationID uuid.UUID) (*domain.Household, error)
	DeclineInvitation(ctx context.Context, invitationID uuid.UUID) error
	CancelInvitation(ctx context.Context, invitationID uuid.UUID) error
}

// HouseholdHandler serves household REST endpoints.
type HouseholdHandler struct {
	svc householdService
	log *slog.Logger
}

// NewHouseholdHandler creates a HouseholdHandler.
func NewHouseholdHandler(svc householdService, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{svc: svc, log: logger.With("handler", "household")}
}

type householdViewResponse struct {
	Household householdResponse `json:"household"`
	Members   []memberResponse  `json:"members"`
}

// Create handles POST /households.
func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateHousehold(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHouseholdResponse(created))
}

// Join handles POST /households/join.
func (h *HouseholdHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	joined, err := h.svc.JoinByCode(r.Context(), req.Code)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toHouseholdResponse(joined))
}

// Get handles GET /households/me.
func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetMyHousehold(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, householdViewResponse{
		Household: toHouseholdResponse(view.Household),
		Members:   toMemberList(view.Members),
	})
}

// Rename handles PUT /households/me.
func (h *HouseholdHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	renamed, err := h.svc.RenameHousehold(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toHouseholdResponse(renamed))
}

// Leave handles POST /households/leave.
func (h *HouseholdHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.LeaveHousehold(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember handles DELETE /households/members/{userID}.
func (h *HouseholdHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.svc.RemoveMember(r.Context(), userID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangeMemberRole handles PUT /households/members/{userID}/role.
func (h *HouseholdHandler) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.ChangeMemberRole(r.Context(), userID, domain.HouseholdRole(req.Role))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, memberResponse{
		UserID:   updated.UserID.String(),
		Email:    updated.UserEmail,
		Role:     updated.Role.String(),
		JoinedAt: updated.JoinedAt,
	})
}

// Invite handles POST /households/invitations.
func (h *HouseholdHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.svc.InviteMember(r.Context(), req.Email)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvitationResponse(inv))
}

// ListInvitations handles GET /households/invitations.
func (h *HouseholdHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.svc.ListInvitations(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvitationList(invitations))
}

// ListMyInvitations handles GET /invitations.
func (h *HouseholdHandler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.svc.ListMyInvitations(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvitationList(invitations))
}

// AcceptInvitation handles POST /invitations/{id}/accept.
func (h *HouseholdHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	joined, err := h.svc.AcceptInvitation(r.Context(), invitationID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toHouseholdResponse(joined))
}

// DeclineInvitation handles POST /invitations/{id}/decline.
func (h *HouseholdHandler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeclineInvitation(r.Context(), invitationID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelInvitation handles DELETE /households/invitations/{id}.
func (h *HouseholdHandler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.CancelInvitation(r.Context(), invitationID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
