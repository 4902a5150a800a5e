package routes

import (
	"github.com/Kariqs/bookstore-api/controllers"
	"github.com/Kariqs/bookstore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/checkout", middlewares.RequireAuth(), controllers.Checkout)
	server.GET("/orders", middlewares.RequireAuth(), controllers.GetOrders)
	server.GET("/orders/:id", middlewares.RequireAuth(), controllers.GetOrderById)
}
