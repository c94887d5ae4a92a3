package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasMargets11/mirubrodigital-sub002/controllers"
	"github.com/LucasMargets11/mirubrodigital-sub002/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	floorCtrl := controllers.NewFloorController(db)
	configCtrl := controllers.NewConfigurationController(db)
	orderCtrl := controllers.NewOrderController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// FLOOR (polled by the live view)
	r.GET("/floor/snapshot", floorCtrl.GetSnapshot)
	r.GET("/floor/stats", floorCtrl.GetFloorStats)
	r.GET("/floor/configuration", configCtrl.GetConfiguration)

	// ORDERS (primary-action navigation targets)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// CONFIGURATION (atomic whole-replace)
	auth.GET("/floor/configuration", configCtrl.GetConfiguration)
	auth.PUT("/floor/configuration", configCtrl.ReplaceConfiguration)

	// ORDERS (staff/admin)
	auth.POST("/orders/:order_id/assign-table", orderCtrl.AssignTable)
	auth.POST("/orders/:order_id/close", orderCtrl.CloseOrder)

	return r
}
