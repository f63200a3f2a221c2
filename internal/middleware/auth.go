package middleware

import (
	"strings"

	"swmanager/internal/apperror"
	"swmanager/internal/auth"
	"swmanager/internal/model"
	"swmanager/internal/repository"
	"swmanager/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set on *gin.Context after authentication
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// ScopeResolver hands out the connection pool for a role
type ScopeResolver interface {
	Root() *gorm.DB
	Resolve(role model.Role) (*gorm.DB, error)
}

// Auth validates bearer tokens and binds the caller's database scope to the request
type Auth struct {
	tokens *auth.TokenService
	scopes ScopeResolver
}

func NewAuth(tokens *auth.TokenService, scopes ScopeResolver) *Auth {
	return &Auth{tokens: tokens, scopes: scopes}
}

// Abort writes err as the response body and stops the handler chain
func Abort(c *gin.Context, err error) {
	status, body := response.FromError(err)
	c.AbortWithStatusJSON(status, body)
}

// RequireRole authenticates the request, resolves the scope for the token's role and then
// checks the role against allowedRoles. Handlers behind it always run on the caller's scope.
func (a *Auth) RequireRole(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			Abort(c, err)
			return
		}

		claims, err := a.tokens.Validate(tokenString)
		if err != nil {
			Abort(c, err)
			return
		}

		db, err := a.scopes.Resolve(claims.Role)
		if err != nil {
			Abort(c, err)
			return
		}

		roleAllowed := false
		for _, role := range allowedRoles {
			if claims.Role == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			Abort(c, apperror.Forbidden("Access denied: insufficient permissions"))
			return
		}

		ctx := auth.WithClaims(c.Request.Context(), claims)
		ctx = repository.WithScope(ctx, db)
		c.Request = c.Request.WithContext(ctx)

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)

		c.Next()
	}
}

// RootScope binds the authentication scope for the public login route
func (a *Auth) RootScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := a.scopes.Root()
		if db == nil {
			Abort(c, apperror.Conflict("No database scope configured for login", nil))
			return
		}
		c.Request = c.Request.WithContext(repository.WithScope(c.Request.Context(), db))
		c.Next()
	}
}

// ActorID returns the authenticated user's ID set by RequireRole
func ActorID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperror.Unauthorized("Authorization is missing", nil)
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperror.Unauthorized("Invalid authorization format. Expected 'Bearer <token>'", nil)
	}
	return parts[1], nil
}
