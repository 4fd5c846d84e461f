package models

// OrderItemRequest is one line of an order placement. ID is the product id
// (field name kept for wire compatibility with the storefront client).
type OrderItemRequest struct {
	ID       int64   `json:"id" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"min=0"`
}

// CreateOrderRequest represents the request body for POST /api/orders
type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" binding:"min=0"`
}
