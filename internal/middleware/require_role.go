package middleware

import (
	"net/http"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// RequireRole restricts an already-authenticated route to one user
// type. It must run after AuthMiddleware; a request that reaches it
// without a context user is treated as unauthenticated.
func RequireRole(role models.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Not authenticated", nil,
				)
				return
			}
			if user.UserType != role {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient permissions", nil,
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
