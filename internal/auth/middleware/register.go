package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/users"
	"github.com/kcetprep/kcetprep/internal/validation"
)

// POST /auth/register  { "email": "...", "full_name": "...", "password": "..." }
func RegisterHandler(a *AuthService, store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.Registration
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := store.Register(r.Context(), req)
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "validation failed", "fields": verr.Fields})
			return
		case errors.Is(err, users.ErrEmailTaken):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			log.Printf("register: %v", err)
			http.Error(w, "registration failed", http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: tok, User: u})
	}
}
