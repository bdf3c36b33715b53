package handler

import (
	"net/http"

	"triviarena/internal/service"
)

// AuthHandler issues play tokens.
type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Guest handles POST /v1/auth/guest.
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	token, err := h.authSvc.IssueGuestToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	respondJSON(w, http.StatusOK, token)
}
