package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chanspick/PiCom/internal/usecase/user"
)

// UserHandler handles per-user stats reads.
type UserHandler struct {
	users *user.Usecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *user.Usecase) *UserHandler {
	return &UserHandler{users: users}
}

// Stats handles GET /v1/users/{userID}/stats.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
