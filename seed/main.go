package main

import (
	"log"
	"math/rand"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func seedUsers() models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}

	user := models.User{Username: "testuser", Email: "test@example.com", Password: string(hash), Role: "user"}
	result := initializers.DB.Where("username = ?", user.Username).FirstOrCreate(&user)
	if result.Error != nil {
		log.Fatal("Failed to seed user: ", result.Error)
	}
	log.Println("Seeded user:", user.Username)
	return user
}

func seedCategories() []models.Category {
	names := []string{"Fiction", "Non-Fiction", "Science", "History"}
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		category := models.Category{Name: name}
		if err := initializers.DB.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			log.Fatal("Failed to seed category: ", err)
		}
		categories = append(categories, category)
	}
	return categories
}

func seedAuthors() []models.Author {
	names := []string{"Jane Austen", "Mark Twain", "Isaac Newton", "Albert Einstein"}
	authors := make([]models.Author, 0, len(names))
	for _, name := range names {
		author := models.Author{Name: name}
		if err := initializers.DB.Where("name = ?", name).FirstOrCreate(&author).Error; err != nil {
			log.Fatal("Failed to seed author: ", err)
		}
		authors = append(authors, author)
	}
	return authors
}

func seedBooks(authors []models.Author, categories []models.Category) []models.Book {
	titles := []string{"Book 1", "Book 2", "Book 3", "Book 4", "Book 5"}
	books := make([]models.Book, 0, len(titles))
	for _, title := range titles {
		authorId := authors[rand.Intn(len(authors))].ID
		book := models.Book{
			Title:      title,
			Price:      decimal.NewFromInt(int64(rand.Intn(1500) + 500)).Div(decimal.NewFromInt(100)),
			AuthorID:   &authorId,
			CategoryID: categories[rand.Intn(len(categories))].ID,
		}
		if err := initializers.DB.Where("title = ?", title).FirstOrCreate(&book).Error; err != nil {
			log.Fatal("Failed to seed book: ", err)
		}
		books = append(books, book)
	}
	return books
}

func seedCartAndOrder(user models.User, books []models.Book) {
	for _, book := range books[:3] {
		cartItem := models.CartItem{UserID: user.ID, BookID: book.ID, Quantity: rand.Intn(3) + 1}
		if err := initializers.DB.Where("user_id = ? AND book_id = ?", user.ID, book.ID).FirstOrCreate(&cartItem).Error; err != nil {
			log.Fatal("Failed to seed cart item: ", err)
		}
		log.Printf("Added %s to %s's cart", book.Title, user.Username)
	}

	var cartItems []models.CartItem
	if err := initializers.DB.Preload("Book").Where("user_id = ?", user.ID).Find(&cartItems).Error; err != nil {
		log.Fatal("Failed to load seeded cart: ", err)
	}
	if len(cartItems) == 0 {
		return
	}

	total := decimal.Zero
	for _, item := range cartItems {
		total = total.Add(item.Book.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		order := models.Order{UserID: user.ID, TotalAmount: total, Status: "Pending"}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range cartItems {
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				BookID:   item.BookID,
				Title:    item.Book.Title,
				Price:    item.Book.Price,
				Quantity: item.Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		log.Printf("Created order %d for %s with %d items", order.ID, user.Username, len(cartItems))
		return nil
	})
	if err != nil {
		log.Fatal("Failed to seed order: ", err)
	}
}

func main() {
	user := seedUsers()
	categories := seedCategories()
	authors := seedAuthors()
	books := seedBooks(authors, categories)
	seedCartAndOrder(user, books)
	log.Println("Seeding complete!")
}
