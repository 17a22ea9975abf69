package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/controllers"
	"github.com/yigit/registrar/internal/app/views"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/auth"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := views.Templates()
	require.NoError(t, err)

	jwt := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "route-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "registrar.test",
	})

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	SetupRouter(router,
		controllers.NewPageController(nil, nil, zerolog.Nop()),
		controllers.NewAuthController(nil, controllers.SessionConfig{CookieName: "registrar_session", Lifetime: time.Hour}, zerolog.Nop()),
		controllers.NewOfferingController(nil, nil),
		controllers.NewHealthController(okPinger{}),
		middleware.NewAuthMiddleware(jwt, "registrar_session"),
	)
	return router
}

func TestPagesRedirectToLogin(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/", "/index", "/offerings", "/register/7"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Contains(t, w.Header().Get("Location"), middleware.LoginPath+"?next=", path)
	}
}

func TestAPIRequiresToken(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/api/v1/offerings", "/api/v1/offerings/7", "/api/v1/catalog/CSE%20183"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestPublicRoutes(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoutes(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}
