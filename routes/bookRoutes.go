package routes

import (
	"github.com/Kariqs/bookstore-api/controllers"
	"github.com/Kariqs/bookstore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func BookRoutes(server *gin.Engine) {
	server.GET("/books", controllers.GetBooks)
	server.GET("/books/:id", controllers.GetBook)
	server.POST("/books", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateBook)
	server.PUT("/books/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateBook)
	server.DELETE("/books/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteBook)
	server.POST("/books/:id/cover", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UploadBookCover)

	server.GET("/authors", controllers.GetAuthors)
	server.GET("/authors/:id", controllers.GetAuthor)
	server.POST("/authors", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateAuthor)
	server.PUT("/authors/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateAuthor)
	server.DELETE("/authors/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteAuthor)

	server.GET("/categories", controllers.GetCategories)
	server.GET("/categories/:id", controllers.GetCategory)
	server.POST("/categories", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateCategory)
	server.PUT("/categories/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateCategory)
	server.DELETE("/categories/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteCategory)
}
