package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID      uint            `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status      string          `json:"status"`
	OrderItems  []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem freezes the book title and price at checkout time so later
// catalog changes never alter order history.
type OrderItem struct {
	gorm.Model
	OrderID  uint            `json:"orderId"`
	BookID   uint            `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	Quantity int             `json:"quantity"`
}
