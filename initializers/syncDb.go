package initializers

import (
	"log"

	"github.com/Kariqs/bookstore-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.User{}, &models.Category{}, &models.Author{}, &models.Book{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{})
	log.Println("Database synced successfully.")
}
