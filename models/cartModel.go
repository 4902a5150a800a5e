package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	UserID   uint  `json:"userId" gorm:"uniqueIndex:idx_cart_user_book"`
	BookID   uint  `json:"bookId" gorm:"uniqueIndex:idx_cart_user_book"`
	Book     *Book `json:"book,omitempty"`
	Quantity int   `json:"quantity"`
}

type AddToCartInput struct {
	BookID   uint `json:"book" binding:"required"`
	Quantity int  `json:"quantity"`
}
