package auth

import (
	"log/slog"
	"net/http"

	"github.com/contractly/timesheet-management/internal/user"
)

// RoleAuthorization gates routes on the caller's role. Finer-grained checks
// (ownership, management relationship, status) stay in the timesheet policy.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := user.CallerFromContext(r.Context())
			if !ok || caller == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if caller.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", caller.ID,
				"role", caller.Role,
				"required_roles", roles)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}

func (ra *RoleAuthorization) RequireContractor() func(http.Handler) http.Handler {
	return ra.RequireRole(user.RoleContractor)
}

func (ra *RoleAuthorization) RequireRecruiter() func(http.Handler) http.Handler {
	return ra.RequireRole(user.RoleRecruiter)
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(user.RoleAdmin)
}
