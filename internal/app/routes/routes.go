package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/controllers"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pageController *controllers.PageController,
	authController *controllers.AuthController,
	offeringController *controllers.OfferingController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public session routes ---
	session := router.Group("/auth")
	{
		session.GET("/login", authController.LoginPage)
		session.POST("/login", authController.Login)
		session.POST("/logout", authController.Logout)
	}

	// --- Pages behind the login redirect ---
	pages := router.Group("")
	pages.Use(authMiddleware.SessionAuth())
	{
		pages.GET("/", pageController.Index)
		pages.GET("/index", pageController.Index)
		pages.GET("/offerings", pageController.Offerings)
		pages.GET("/register/:offering_id", pageController.RegisterForm)
		pages.POST("/register/:offering_id", pageController.RegisterSubmit)
	}

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", healthController.Health)
	v1.POST("/auth/login", authController.APILogin)

	// --- Authenticated API routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.APIAuth())

	offerings := authenticated.Group("/offerings")
	{
		offerings.GET("", offeringController.ListOfferings)
		offerings.GET("/:id", offeringController.GetOffering)
		offerings.GET("/:id/registrations", offeringController.ListRegistrations)
		offerings.POST("/:id/registrations", offeringController.CreateRegistration)
	}

	authenticated.GET("/catalog/:number", offeringController.GetCatalogClass)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			middleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("route not found"))
			return
		}
		controllers.NotFound(c)
	})
}
