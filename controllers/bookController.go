package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// Book handlers
func CreateBook(ctx *gin.Context) {
	var book models.Book
	if err := ctx.ShouldBindJSON(&book); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Validate category exists
	var category models.Category
	if err := initializers.DB.First(&category, book.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate category", err)
		}
		return
	}

	if book.AuthorID != nil {
		var author models.Author
		if err := initializers.DB.First(&author, *book.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Author not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate author", err)
			}
			return
		}
	}

	if err := initializers.DB.Create(&book).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create book", err)
		return
	}

	ctx.JSON(http.StatusCreated, book)
}

func GetBooks(ctx *gin.Context) {
	var books []models.Book

	// Add pagination
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Author").Preload("Category")

	// Filter by category or author id if provided
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if author := ctx.Query("author"); author != "" {
		query = query.Where("author_id = ?", author)
	}

	// Add search by title if provided
	if search := ctx.Query("search"); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	switch ctx.Query("sort") {
	case "price_asc":
		query = query.Order("price asc")
	case "price_desc":
		query = query.Order("price desc")
	default:
		query = query.Order("id desc")
	}

	// Execute the query with pagination
	result := query.Limit(limit).Offset(offset).Find(&books)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch books", result.Error)
		return
	}

	// Get total count for pagination, under the same filters
	var count int64
	countQuery := initializers.DB.Model(&models.Book{})
	if category := ctx.Query("category"); category != "" {
		countQuery = countQuery.Where("category_id = ?", category)
	}
	if author := ctx.Query("author"); author != "" {
		countQuery = countQuery.Where("author_id = ?", author)
	}
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("title LIKE ?", "%"+search+"%")
	}
	countQuery.Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"books": books,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetBook(ctx *gin.Context) {
	bookId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	var book models.Book
	result := initializers.DB.Preload("Author").Preload("Category").First(&book, bookId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Book not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve book", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, book)
}

func UpdateBook(ctx *gin.Context) {
	bookId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	var book models.Book
	if err := initializers.DB.First(&book, bookId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Book not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve book", err)
		}
		return
	}

	var updateData models.Book
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	book.Title = updateData.Title
	book.Price = updateData.Price
	book.AuthorID = updateData.AuthorID
	book.CategoryID = updateData.CategoryID
	book.Tags = updateData.Tags

	if err := initializers.DB.Save(&book).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update book", err)
		return
	}

	ctx.JSON(http.StatusOK, book)
}

// DeleteBook removes a book together with any cart items holding it, inside
// one transaction, so no cart is left referencing a missing book.
func DeleteBook(ctx *gin.Context) {
	bookId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Unscoped().Where("book_id = ?", bookId).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to remove cart items", err)
		return
	}

	result := tx.Delete(&models.Book{}, bookId)
	if result.Error != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete book", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		respondWithError(ctx, http.StatusNotFound, "Book not found", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete book", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Book deleted successfully."})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadBookCover(ctx *gin.Context) {
	bookId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	// Validate book exists
	var book models.Book
	if err := initializers.DB.First(&book, bookId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Book not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate book", err)
		}
		return
	}

	file, err := ctx.FormFile("cover")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No cover file uploaded", err)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to open uploaded file", err)
		return
	}
	defer f.Close()

	// Generate a unique filename to prevent overwrites
	uniqueFilename := fmt.Sprintf("covers/%d-%s-%s", bookId, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading cover %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload cover", err)
		return
	}

	if err := initializers.DB.Model(&book).Update("cover_url", result.Location).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save cover URL", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Cover uploaded",
		"url":     result.Location,
	})
}
