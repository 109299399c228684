package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/users"
)

type updateUserRoleReq struct {
	Role string `json:"role"`
}

// PATCH /users/{userID}/role  { "role": "admin" }
func AdminUpdateUserRoleHandler(store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRoleReq
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := store.SetRole(r.Context(), chi.URLParam(r, "userID"), req.Role)
		switch {
		case errors.Is(err, users.ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, users.ErrInvalidRole), errors.Is(err, users.ErrLastAdmin):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case err != nil:
			respondError(w, "update role", err)
		default:
			respondJSON(w, http.StatusOK, u)
		}
	}
}
