package routes

import (
	"github.com/Kariqs/bookstore-api/controllers"
	"github.com/Kariqs/bookstore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.DELETE("/:id", controllers.RemoveFromCart)
	}
}
