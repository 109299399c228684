package http

import (
	"net/http"

	authmw "github.com/kcetprep/kcetprep/internal/auth/middleware"
	"github.com/kcetprep/kcetprep/internal/users"
)

// GET /users?role=student
func ListUsersHandler(store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.List(r.Context(), r.URL.Query().Get("role"))
		if err != nil {
			respondError(w, "list users", err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /users/me
func MeHandler(store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := store.ByID(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}
