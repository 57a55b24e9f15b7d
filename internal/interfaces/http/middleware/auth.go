// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/pkg/auth"
)

const (
	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// IdentityResolver turns a bearer token into an identity
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*session.Identity, error)
}

// Session attaches the browsing session named by the session cookie,
// starting a new one when the cookie is missing or stale, and refreshes the
// cookie's lifetime. A signed-out
// session presenting a valid bearer token is signed in as its owner, which
// lets API clients carry their identity into a fresh session.
func Session(cfg *config.Config, store *session.Store, resolver IdentityResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(cfg.Session.CookieName)

		// Re-issued on every request so its expiry slides with the idle timer
		sess, _ := store.GetOrCreate(cookie)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			cfg.Session.CookieName,
			sess.ID,
			int(cfg.Session.IdleTimeout.Seconds()),
			"/",
			"",
			cfg.Session.CookieSecure,
			true,
		)

		if _, signedIn := sess.Identity(); !signedIn {
			if token := BearerToken(c); token != "" {
				identity, err := resolver.Resolve(c.Request.Context(), token)
				if err != nil {
					logger.WithError(err).WithField("session_id", sess.ID).Debug("bearer token rejected")
				} else {
					sess.SetIdentity(identity)
				}
			}
		}

		c.Set(sessionKey, sess)
		c.Set(sessionIDKey, sess.ID)
		c.Next()
	}
}

// RequireSignIn rejects sessions without an identity
func RequireSignIn(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": message,
			})
			return
		}
		c.Next()
	}
}

// GetSession returns the session attached by Session
func GetSession(c *gin.Context) *session.Session {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// GetIdentity returns the signed-in identity of the request's session
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	sess := GetSession(c)
	if sess == nil {
		return session.Identity{}, false
	}
	return sess.Identity()
}

// BearerToken extracts the token from the Authorization header, if any
func BearerToken(c *gin.Context) string {
	return auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
}
