package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type contextKey string

const ContextKeyUser = contextKey("user")

// AuthMiddleware guards protected endpoints. The session ID is read
// from the session cookie, resolved against the session store, and the
// authenticated user is placed on the request context. Missing or
// expired sessions yield a 401.
//
// Each authenticated request also slides the session expiry forward
// (rolling sessions); a Touch failure is logged but never fails the
// request.
func AuthMiddleware(sessions repositories.SessionRepository, sessionTTL time.Duration, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(utils.SessionCookieName)
			if err != nil || cookie.Value == "" {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Not authenticated", nil,
				)
				return
			}

			session, user, err := sessions.GetWithUser(r.Context(), cookie.Value)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Session expired or invalid", nil,
				)
				return
			}

			if err := sessions.Touch(r.Context(), session.ID, time.Now().Add(sessionTTL)); err != nil {
				utils.Logger.WithError(err).Warn("Failed to extend session expiry")
			} else {
				utils.SetSessionCookie(w, session.ID, sessionTTL, secureCookies)
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user stored by
// AuthMiddleware, or nil when the request was not authenticated.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}
