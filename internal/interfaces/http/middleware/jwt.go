package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/auth"
	"github.com/wms3pl/backend/internal/infrastructure/logger"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys for authentication data
const (
	JWTClaimsKey    = "jwt_claims"
	JWTUserIDKey    = "jwt_user_id"
	JWTTenantIDKey  = "jwt_tenant_id"
	JWTPrincipalKey = "jwt_principal"

	AuthHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for the JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist may be nil, in which case revocation is not checked
	TokenBlacklist auth.TokenBlacklist
	SkipPaths      []string
	Logger         *zap.Logger
}

// JWTAuthMiddleware authenticates with default settings
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig validates the bearer token, checks revocation
// and stores the caller's Principal in the gin context. The request context
// gains tenant_id and user_id for logging.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header must use the Bearer scheme")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Token is required")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			cfg.Logger.Debug("Token validation failed", zap.Error(err))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail closed when the blacklist cannot be consulted
				cfg.Logger.Error("Token blacklist lookup failed", zap.Error(err))
				abortUnauthorized(c, dto.ErrCodeUnauthorized, "Unable to verify token")
				return
			}
			if revoked {
				abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
				return
			}
		}

		principal := claims.Principal()
		c.Set(JWTClaimsKey, claims)
		c.Set(JWTPrincipalKey, principal)
		c.Set(JWTUserIDKey, principal.UserID)
		c.Set(JWTTenantIDKey, principal.TenantID)

		ctx := logger.WithUserID(c.Request.Context(), principal.UserID)
		if principal.TenantID != "" {
			ctx = logger.WithTenantID(ctx, principal.TenantID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(code, message, c.GetString("request_id")))
}

// GetJWTClaims returns the validated claims, or nil on unauthenticated routes
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if cl, ok := claims.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// GetPrincipal returns the authenticated caller
func GetPrincipal(c *gin.Context) (tenancy.Principal, bool) {
	if v, exists := c.Get(JWTPrincipalKey); exists {
		p, ok := v.(tenancy.Principal)
		return p, ok
	}
	return tenancy.Principal{}, false
}
