package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/models/dto"
	"github.com/arjun/placement-portal/internal/app/services"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// currentUserKey is the gin context key holding the resolved session user.
// The identity is request-scoped; handlers read it from the context instead
// of any ambient global.
const currentUserKey = "currentUser"

// SessionMiddleware resolves the session cookie to a user
type SessionMiddleware struct {
	authService *services.AuthService
	cookieName  string
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(authService *services.AuthService, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		authService: authService,
		cookieName:  cookieName,
	}
}

// SessionAuth loads the user behind the session cookie into the request
// context. Requests without a live session are redirected to the login page.
func (m *SessionMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := m.authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				// Stale cookie; drop it and send the client back to login.
				c.SetCookie(m.cookieName, "", -1, "/", "", false, true)
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}

			// A store failure is not the client's fault; the cookie stays.
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RoleRequired checks that the session user carries the expected role. It
// runs after SessionAuth and is the endpoint-level authorization check,
// independent of how the request was routed.
func (m *SessionMiddleware) RoleRequired(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		if !user.Role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnknownRole, "Unknown role")))
			return
		}

		if user.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the session user stored by SessionAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
