package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "userID"
	ContextKeyEmail  = "email"
)

// LoginPath is where unauthenticated page requests are sent
const LoginPath = "/auth/login"

// TokenValidator verifies access tokens
type TokenValidator interface {
	ValidateAndExtractClaims(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	tokens     TokenValidator
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware. Tokens are read from the
// Authorization header or from the session cookie named cookieName.
func NewAuthMiddleware(tokens TokenValidator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		cookieName: cookieName,
	}
}

// authenticate resolves the claims of the request, preferring a bearer token
func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, error) {
	var tokenString string
	if header := c.GetHeader("Authorization"); header != "" {
		token, err := auth.ExtractBearerToken(header)
		if err != nil {
			return nil, err
		}
		tokenString = token
	} else {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie == "" {
			return nil, apperrors.ErrUnauthorized
		}
		tokenString = cookie
	}

	return m.tokens.ValidateAndExtractClaims(tokenString)
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyEmail, claims.Email)

	l := logger.Ctx(c.Request.Context()).With().Str("email", claims.Email).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))
}

// SessionAuth guards HTML pages. Unauthenticated requests are redirected to
// the login page with the requested path in `next`.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				// stale or forged cookie
				c.SetCookie(m.cookieName, "", -1, "/", "", false, true)
			}
			logger.Ctx(c.Request.Context()).Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Redirecting to login")
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// APIAuth guards JSON endpoints and answers 401 on failure
func (m *AuthMiddleware) APIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			switch {
			case errors.Is(err, apperrors.ErrUnauthorized):
				errorCode = dto.ErrorCodeUnauthorized
				errorDetails = "Authorization header or session cookie missing"
			case errors.Is(err, apperrors.ErrTokenExpired):
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			case errors.Is(err, apperrors.ErrInvalidFormat):
				errorDetails = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication required").WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// CurrentEmail returns the email of the authenticated account
func CurrentEmail(c *gin.Context) (string, bool) {
	email := c.GetString(ContextKeyEmail)
	return email, email != ""
}
