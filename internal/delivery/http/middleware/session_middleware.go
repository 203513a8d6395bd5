package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Session resolves the session cookie into a domain.Actor stored on the
// context. Requests without a valid session continue anonymously.
func Session(authUC domain.AuthUsecase, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		actor, err := authUC.Authenticate(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				logger.Log.Error("session lookup failed", "error", err)
			}
			c.Next()
			return
		}

		c.Set(string(domain.KeyActor), actor)
		c.Next()
	}
}

// ActorFrom returns the authenticated caller or nil.
func ActorFrom(c *gin.Context) *domain.Actor {
	v, ok := c.Get(string(domain.KeyActor))
	if !ok {
		return nil
	}
	actor, _ := v.(*domain.Actor)
	return actor
}

// SessionID returns the raw session cookie value, if any.
func SessionID(c *gin.Context, cookieName string) string {
	id, _ := c.Cookie(cookieName)
	return id
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorFrom(c) == nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized, please log in.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and callers whose role is
// not in roles with 403.
func RequireRole(audit *security.AuditLogger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized, please log in.", nil)
			c.Abort()
			return
		}
		if !actor.HasRole(roles...) {
			audit.LogAccessDenied(c.Request.Context(), strconv.FormatInt(actor.UserID, 10), c.FullPath(), c.ClientIP(), c.GetString(string(domain.KeyRequestID)))
			response.Error(c, http.StatusForbidden, "Access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
