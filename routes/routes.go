package routes

import (
	"net/http"
	"time"

	"voltport/handlers"
	"voltport/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login, and logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignupHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/admin/login", hb.AdminLoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.DELETE("/me", hb.DeleteAccountHandler)
	}
}

// RegisterPortRoutes registers port listing and slot endpoints. Listings are
// public; slot grids require authentication.
func RegisterPortRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ports")
	{
		api.GET("", hb.ListPortsHandler)
		api.GET("/:id", hb.GetPortHandler)
		api.GET("/:id/available-slots", middleware.JWTAuthUserMiddleware(hb.UserRepo), hb.GetPortSlotsHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListMyBookingsHandler)
		api.POST("/:id/pay", hb.PayBookingHandler)
		api.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterFavoriteRoutes registers saved-port endpoints.
func RegisterFavoriteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/favorites")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.ListFavoritesHandler)
		api.GET("/check/:portId", hb.CheckFavoriteHandler)
		api.POST("/:portId", hb.AddFavoriteHandler)
		api.DELETE("/:portId", hb.RemoveFavoriteHandler)
	}
}

// RegisterSubscriptionRoutes registers plan and quota endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.GET("/plans", hb.ListPlansHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/subscribe", hb.SubscribeHandler)
		api.GET("", hb.ListMySubscriptionsHandler)
		api.GET("/check-limit", hb.CheckLimitHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		api.GET("/users", hb.AdminGetAllUsersHandler)
		api.PUT("/users/:id", hb.AdminUpdateUserHandler)
		api.GET("/bookings", hb.AdminGetAllBookingsHandler)
		api.GET("/stats", hb.AdminGetStatsHandler)

		api.POST("/plans", hb.CreatePlanHandler)
		api.GET("/ports", hb.ListPortsHandler)
		api.POST("/ports", hb.CreatePortHandler)
		api.PUT("/ports/:id", hb.UpdatePortHandler)
		api.DELETE("/ports/:id", hb.DeletePortHandler)

		api.POST("/storage/:bucket", hb.UploadFileHandler)
		api.GET("/storage/:bucket/:filename", hb.GetDownloadURLHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm VoltPort"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterPortRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterFavoriteRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
