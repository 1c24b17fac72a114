package handler

import (
	"net/http"

	"boardshelf/backend/internal/auth"
	"boardshelf/backend/internal/logging"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(logging.GinRecovery(h.logger), logging.GinLogger(h.logger))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireAuth := auth.AuthMiddleware(h.cfg.JWTSecret)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})
		apiV1.GET("/categories", h.GetCategoryNames)
		apiV1.GET("/languages", h.GetLanguages)

		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", h.RegisterUser)
			authRoutes.POST("/login", h.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(requireAuth)
		{
			userRoutes.GET("/me", h.GetMe)
			userRoutes.GET("/me/ratings", h.GetMyRatings)
		}

		householdRoutes := apiV1.Group("/households")
		householdRoutes.Use(requireAuth)
		{
			householdRoutes.POST("", h.CreateHousehold)
			householdRoutes.GET("/me", h.GetMyHousehold)
			householdRoutes.POST("/:id/join", h.JoinHousehold)
		}

		// Game routes: reads are public, a token personalises the filters.
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", auth.OptionalAuthMiddleware(h.cfg.JWTSecret), h.GetGames)
			gameRoutes.GET("/:id", h.GetGameByID)

			gameRoutes.POST("", requireAuth, h.CreateGame)
			gameRoutes.POST("/duplicates", requireAuth, h.CheckDuplicates)
			gameRoutes.POST("/pending", requireAuth, h.SubmitPending)
			gameRoutes.PUT("/:id", requireAuth, h.UpdateGame)
			gameRoutes.DELETE("/:id", requireAuth, h.DeleteGame)
			gameRoutes.POST("/:id/ratings", requireAuth, h.RateGame)
		}

		bggRoutes := apiV1.Group("/bgg")
		bggRoutes.Use(requireAuth)
		{
			bggRoutes.GET("/search", h.SearchBGG)
			bggRoutes.GET("/things/:id", h.GetBGGThing)
		}

		apiV1.GET("/events", requireAuth, h.StreamEvents)

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(requireAuth, auth.AdminMiddleware(h.store))
		{
			categories := adminRoutes.Group("/categories")
			{
				categories.POST("", h.CreateCategory)
				categories.GET("", h.GetCategories)
				categories.PUT("/:id", h.UpdateCategory)
				categories.DELETE("/:id", h.DeleteCategory)
			}

			pending := adminRoutes.Group("/pending")
			{
				pending.GET("", h.GetPending)
				pending.POST("/:id/approve", h.ApprovePending)
				pending.POST("/:id/deny", h.DenyPending)
			}
		}
	}

	return router
}
