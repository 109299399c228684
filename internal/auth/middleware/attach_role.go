package auth

import (
	"log"
	"net/http"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/rbac"
	"github.com/kcetprep/kcetprep/internal/users"
)

// AttachRoleFromDB replaces the token role with the stored one, so role
// changes apply before the token expires. Tokens for deleted users are
// rejected. allowClaimFallback keeps the claim role when the lookup fails
// for any other reason (dev/offline only).
func AttachRoleFromDB(store *users.Store, allowClaimFallback bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			u, err := store.ByID(ctx, SubjectFromContext(ctx))
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, u.Role)))
			case errors.Is(err, users.ErrNotFound):
				http.Error(w, "forbidden", http.StatusForbidden)
			case allowClaimFallback && rbac.RoleFromContext(ctx) != "":
				log.Printf("attach role: falling back to token claim: %v", err)
				next.ServeHTTP(w, r)
			default:
				log.Printf("attach role: %v", err)
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}
