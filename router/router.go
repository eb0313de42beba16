package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"restaurant-reservation/config"
	"restaurant-reservation/controllers"
	"restaurant-reservation/middlewares"
)

// SetupRouter wires every route of the JSON API under /api. Mutating
// catalog/user routes sit behind the admin gate; reservation and order
// creation stay public like the original storefront.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	// 50 req/s per IP across the whole API.
	globalLimiter := middlewares.NewRateLimiter(rate.Limit(50), 50)
	r.Use(globalLimiter.RateLimit())

	authCtrl := controllers.NewAuthController(db, cfg)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db)
	reservationCtrl := controllers.NewReservationController(db)
	orderCtrl := controllers.NewOrderController(db)
	userCtrl := controllers.NewUserController(db)

	requireAuth := middlewares.AuthMiddleware(db, cfg)
	requireAdmin := middlewares.AdminOnly()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Credential endpoints get a tighter per-IP limit than the rest.
	strictLimiter := middlewares.NewRateLimiter(rate.Every(12*time.Second), 5)
	auth := api.Group("/auth")
	{
		auth.POST("/register", strictLimiter.RateLimit(), authCtrl.Register)
		auth.POST("/login", strictLimiter.RateLimit(), authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)
		auth.GET("/me", requireAuth, authCtrl.Me)
		auth.PUT("/me", requireAuth, authCtrl.UpdateProfile)
	}

	api.GET("/tables", tableCtrl.GetAllTables)
	api.GET("/tables/:id", tableCtrl.GetTableByID)
	api.GET("/menu", menuCtrl.GetAllMenuItems)

	api.GET("/reservations", reservationCtrl.GetAllReservations)
	api.POST("/reservations", reservationCtrl.CreateReservation)
	api.PUT("/reservations/:id/cancel", middlewares.OptionalAuthMiddleware(db, cfg), reservationCtrl.CancelReservation)

	api.GET("/orders", orderCtrl.GetAllOrders)
	api.GET("/orders/:id", orderCtrl.GetOrderByID)
	api.POST("/orders", orderCtrl.CreateOrder)

	admin := api.Group("")
	admin.Use(requireAuth, requireAdmin)
	{
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PUT("/tables/:id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:id", tableCtrl.DeleteTable)

		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:id", menuCtrl.DeleteMenuItem)

		admin.PUT("/reservations/:id", reservationCtrl.UpdateReservationStatus)
		admin.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)

		admin.PUT("/orders/:id", orderCtrl.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderCtrl.DeleteOrder)

		admin.GET("/users", userCtrl.GetAllUsers)
		admin.PUT("/users/:id", userCtrl.UpdateUserRole)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)
	}

	return r
}
