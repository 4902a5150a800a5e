package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Bookstore API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

CATALOG
- GET "/books" - List books (filter by category/author, search by title, sort by price)
- POST "/books" - Create a book (admin)
- GET "/books/:id" - Get book by ID
- PUT "/books/:id" - Update a book (admin)
- DELETE "/books/:id" - Delete a book (admin)
- POST "/books/:id/cover" - Upload a book cover (admin)
- GET/POST "/authors", GET/PUT/DELETE "/authors/:id" - Author CRUD
- GET/POST "/categories", GET/PUT/DELETE "/categories/:id" - Category CRUD

CART
- GET "/cart" - List your cart
- POST "/cart" - Add a book to your cart
- DELETE "/cart/:id" - Remove an item from your cart

ORDERS
- POST "/checkout" - Convert your cart into an order
- GET "/orders" - List your past orders
- GET "/orders/:id" - Get one of your orders`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
