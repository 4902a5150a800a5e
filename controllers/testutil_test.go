package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/Kariqs/bookstore-api/routes"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter points the global DB at a throwaway SQLite database and builds
// the full route table, so tests exercise the same middleware chain as
// production.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Author{}, &models.Book{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	initializers.DB = db

	router := gin.New()
	routes.DefaultRoutes(router)
	routes.AuthRoutes(router)
	routes.BookRoutes(router)
	routes.CartRoutes(router)
	routes.OrderRoutes(router)
	return router
}

func createUser(t *testing.T, username, role string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "irrelevant", Role: role}
	if err := initializers.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func createBook(t *testing.T, title string, price string, categoryId uint, authorId *uint) models.Book {
	t.Helper()
	book := models.Book{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryId,
		AuthorID:   authorId,
	}
	if err := initializers.DB.Create(&book).Error; err != nil {
		t.Fatalf("failed to create book %s: %v", title, err)
	}
	return book
}

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	if err := initializers.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	return category
}

func createAuthor(t *testing.T, name string) models.Author {
	t.Helper()
	author := models.Author{Name: name}
	if err := initializers.DB.Create(&author).Error; err != nil {
		t.Fatalf("failed to create author %s: %v", name, err)
	}
	return author
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}

func countRows(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := initializers.DB.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
