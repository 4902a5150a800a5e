package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Author handlers
func CreateAuthor(ctx *gin.Context) {
	var author models.Author
	if err := ctx.ShouldBindJSON(&author); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&author).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create author", err)
		return
	}

	ctx.JSON(http.StatusCreated, author)
}

func GetAuthors(ctx *gin.Context) {
	var authors []models.Author
	if result := initializers.DB.Find(&authors); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch authors", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"authors": authors})
}

func GetAuthor(ctx *gin.Context) {
	authorId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid author ID", err)
		return
	}

	var author models.Author
	if err := initializers.DB.First(&author, authorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Author not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve author", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, author)
}

func UpdateAuthor(ctx *gin.Context) {
	authorId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid author ID", err)
		return
	}

	var author models.Author
	if err := initializers.DB.First(&author, authorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Author not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve author", err)
		}
		return
	}

	var updateData models.Author
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	author.Name = updateData.Name
	if err := initializers.DB.Save(&author).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update author", err)
		return
	}

	ctx.JSON(http.StatusOK, author)
}

// DeleteAuthor removes an author and clears the author reference on that
// author's books inside one transaction.
func DeleteAuthor(ctx *gin.Context) {
	authorId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid author ID", err)
		return
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Book{}).Where("author_id = ?", authorId).Update("author_id", nil).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to detach author's books", err)
		return
	}

	result := tx.Delete(&models.Author{}, authorId)
	if result.Error != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete author", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		respondWithError(ctx, http.StatusNotFound, "Author not found", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete author", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Author deleted successfully."})
}

// Category handlers
func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func GetCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func UpdateCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", err)
		}
		return
	}

	var updateData models.Category
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category.Name = updateData.Name
	if err := initializers.DB.Save(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category and cascades the delete to its books and
// any cart items holding those books, all inside one transaction.
func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var bookIds []uint
	if err := tx.Model(&models.Book{}).Where("category_id = ?", categoryId).Pluck("id", &bookIds).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch category's books", err)
		return
	}

	if len(bookIds) > 0 {
		if err := tx.Unscoped().Where("book_id IN ?", bookIds).Delete(&models.CartItem{}).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to remove cart items", err)
			return
		}
		if err := tx.Where("category_id = ?", categoryId).Delete(&models.Book{}).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category's books", err)
			return
		}
	}

	result := tx.Delete(&models.Category{}, categoryId)
	if result.Error != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}

	log.Printf("Category %d deleted along with %d books", categoryId, len(bookIds))
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
