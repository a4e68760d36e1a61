package routes

import (
	"art-gallery-service/controllers"
	"art-gallery-service/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers bundles the handler sets wired by main.
type Controllers struct {
	Auth    *controllers.AuthController
	Art     *controllers.ArtPictureController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Message *controllers.MessageController
	Report  *controllers.ReportController
}

// Register mounts every route group on the engine.
func Register(r *gin.Engine, c Controllers, jwtSecret []byte, authLimiter *middleware.ClientLimiter) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := r.Group("/")
	authRoutes.Use(authLimiter.Middleware())
	authRoutes.POST("/auth/register", c.Auth.Register)
	authRoutes.POST("/token", c.Auth.Token)
	authRoutes.POST("/token/refresh", c.Auth.RefreshToken)

	// Catalog reads are public but recognize staff tokens so admins see
	// unavailable pictures.
	artRoutes := r.Group("/art-pictures")
	artRoutes.GET("", middleware.OptionalAuth(jwtSecret), c.Art.List)
	artRoutes.GET("/:id", middleware.OptionalAuth(jwtSecret), c.Art.Get)

	artAdmin := artRoutes.Group("")
	artAdmin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireStaff())
	artAdmin.POST("", c.Art.Create)
	artAdmin.PUT("/:id", c.Art.Update)
	artAdmin.DELETE("/:id", c.Art.Delete)

	cartRoutes := r.Group("/carts")
	cartRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	cartRoutes.GET("/my_cart", c.Cart.MyCart)
	cartRoutes.POST("/add_item", c.Cart.AddItem)
	cartRoutes.POST("/remove_item", c.Cart.RemoveItem)
	cartRoutes.POST("/update_item_quantity", c.Cart.UpdateItemQuantity)
	cartRoutes.POST("/clear", c.Cart.Clear)

	orderRoutes := r.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	orderRoutes.GET("", c.Order.GetOrders)
	orderRoutes.GET("/:id", c.Order.GetOrderByID)
	orderRoutes.POST("/checkout", c.Order.Checkout)
	orderRoutes.POST("/:id/process_payment", c.Order.ProcessPayment)

	messageRoutes := r.Group("/messages")
	messageRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	messageRoutes.GET("", c.Message.List)
	messageRoutes.POST("/send_public_message", c.Message.SendPublicMessage)
	messageRoutes.POST("/send_user_message", c.Message.SendUserMessage)
	messageRoutes.POST("/contact_admin", c.Message.ContactAdmin)
	messageRoutes.POST("/:id/mark_as_read", c.Message.MarkAsRead)

	reportRoutes := r.Group("/order-user-view")
	reportRoutes.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireStaff())
	reportRoutes.GET("", c.Report.List)
	reportRoutes.GET("/grouped_by_user", c.Report.GroupedByUser)
}
