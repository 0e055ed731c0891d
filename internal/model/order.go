package model

import "time"

// Order represents one checkout. It is created once by the storefront and is
// immutable here except for the status of its line items.
type Order struct {
	ID            uint    `json:"id" gorm:"primarykey"`
	Name          string  `json:"name" gorm:"type:varchar(255);not null"`
	Email         string  `json:"email" gorm:"type:varchar(255)"`
	Phone         string  `json:"phone" gorm:"type:varchar(50)"`
	Address       string  `json:"address" gorm:"type:text"`
	City          string  `json:"city" gorm:"type:varchar(255)"`
	TransactionID string  `json:"transaction_id" gorm:"type:varchar(255)"`
	PaidAmount    float64 `json:"paid_amount"`
}

// OrderProduct represents one line item of an order. Status is the only
// field mutated after creation (fulfillment workflow).
type OrderProduct struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Status    string    `json:"status" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
