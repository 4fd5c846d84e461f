package entities

import "time"

// Order statuses. Orders are immutable once placed, so "pending" is the
// only status the API ever writes.
const OrderStatusPending = "pending"

// Order represents an order entity in the database
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

// OrderItem is a single line of an order. Price is the unit price captured
// at purchase time, not re-read from the product row. ProductName is joined
// from the products table at query time.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name,omitempty"`
}
