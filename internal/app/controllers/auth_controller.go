package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/views"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// SessionConfig describes the session cookie
type SessionConfig struct {
	CookieName string
	Secure     bool
	Lifetime   time.Duration
}

// AuthController handles sign-in and sign-out
type AuthController struct {
	authService AuthService
	session     SessionConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, session SessionConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		session:     session,
		logger:      logger,
	}
}

// safeNext keeps post-login redirects on this site
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/index"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/index"
	}
	if u.Path == middleware.LoginPath {
		return "/index"
	}
	return next
}

func (c *AuthController) renderLogin(ctx *gin.Context, status int, email, next, formError string) {
	ctx.HTML(status, views.Login, views.Page{
		Title:      "Sign in",
		Next:       next,
		LoginEmail: email,
		FormError:  formError,
	})
}

// LoginPage renders the sign-in form
func (c *AuthController) LoginPage(ctx *gin.Context) {
	c.renderLogin(ctx, http.StatusOK, "", safeNext(ctx.Query("next")), "")
}

// Login handles the sign-in form. The token is stored in an HttpOnly cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.renderLogin(ctx, http.StatusBadRequest, req.Email, safeNext(req.Next), "Enter your email address and password.")
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.renderLogin(ctx, http.StatusUnauthorized, req.Email, safeNext(req.Next), "Incorrect email or password.")
		case errors.Is(err, apperrors.ErrAccountDisabled):
			c.renderLogin(ctx, http.StatusForbidden, req.Email, safeNext(req.Next), "This account is disabled.")
		default:
			renderError(ctx, err)
		}
		return
	}

	c.setSessionCookie(ctx, resp.Token.AccessToken, int(c.session.Lifetime.Seconds()))
	c.logger.Info().Int64("userID", resp.User.ID).Msg("User signed in")
	ctx.Redirect(http.StatusSeeOther, safeNext(req.Next))
}

// Logout clears the session cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	c.setSessionCookie(ctx, "", -1)
	ctx.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.session.CookieName, value, maxAge, "/", "", c.session.Secure, true)
}

// APILogin handles user login for API clients
// @Summary User login
// @Description Authenticates a user and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) APILogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}
