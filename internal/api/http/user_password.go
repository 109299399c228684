package http

import (
	"net/http"

	"github.com/pkg/errors"

	authmw "github.com/kcetprep/kcetprep/internal/auth/middleware"
	"github.com/kcetprep/kcetprep/internal/users"
)

// POST /users/change-password  { "old_password": "...", "new_password": "..." }
func ChangePasswordHandler(store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req users.PasswordChange
		if !decodeJSON(w, r, &req) {
			return
		}

		err := store.ChangePassword(r.Context(), userID, req)
		switch {
		case errors.Is(err, users.ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, users.ErrInvalidCredentials):
			http.Error(w, "incorrect old password", http.StatusForbidden)
		case err != nil:
			respondError(w, "change password", err)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
