package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization builds route guards around the ordered role check:
// owner > admin > employee.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequireRole rejects requests whose user does not hold a role of at least the
// required priority.
func (ra *RBACAuthorization) RequireRole(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !HasAtLeast(user.Roles, required) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"required_role", required,
					"user_roles", user.Roles)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows admins and owners.
func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleAdmin)
}

// RequireOwner allows owners only.
func (ra *RBACAuthorization) RequireOwner() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleOwner)
}
