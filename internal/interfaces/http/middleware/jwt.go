package middleware

import (
	"net/http"
	"strings"

	"github.com/colaai/backend/internal/domain/identity"
	"github.com/colaai/backend/internal/infrastructure/auth"
	"github.com/colaai/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionKey is the gin context key for the authenticated session
	SessionKey = "session"
	// AuthHeaderKey is the header carrying the bearer token
	AuthHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	// JWTService validates tokens
	JWTService *auth.JWTService
	// SkipPaths don't require authentication
	SkipPaths []string
	// OptionalPaths accept requests without a token but attach the
	// session when one is present (public endpoints with
	// session-dependent behavior)
	OptionalPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuth creates the JWT authentication middleware. Requests on skip
// paths pass through untouched; everything else needs a valid bearer
// token, which becomes an identity.Session in the gin context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}
	optional := make(map[string]bool, len(cfg.OptionalPaths))
	for _, p := range cfg.OptionalPaths {
		optional[p] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] || hasSkipPrefix(cfg.SkipPaths, path) {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			if optional[path] {
				c.Next()
				return
			}
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Token validation failed",
					zap.String("path", path),
					zap.Error(err))
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		session, err := claims.Session()
		if err != nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// hasSkipPrefix matches skip entries ending in "/*" as prefixes. The
// trailing slash stays in the prefix so "/foo/*" does not match "/fooX".
func hasSkipPrefix(skipPaths []string, path string) bool {
	for _, p := range skipPaths {
		if prefix, ok := strings.CutSuffix(p, "*"); ok && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, bearerPrefix)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetSession returns the authenticated session, or nil when the request
// carried no valid token.
func GetSession(c *gin.Context) *identity.Session {
	if v, exists := c.Get(SessionKey); exists {
		if s, ok := v.(*identity.Session); ok {
			return s
		}
	}
	return nil
}
