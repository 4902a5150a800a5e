package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
}

type Author struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
}

type Book struct {
	gorm.Model
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	AuthorID   *uint           `json:"authorId" gorm:"index"`
	Author     *Author         `json:"author,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID uint            `json:"categoryId" gorm:"index;not null"`
	Category   *Category       `json:"category,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CoverURL   string          `json:"coverUrl"`
	Tags       datatypes.JSON  `json:"tags"`
}
