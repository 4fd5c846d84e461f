package models

import "storefront-be/internal/entities"

// OrderListResponse is one page of a user's order history, newest first
type OrderListResponse struct {
	Orders      []*entities.Order `json:"orders"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// CreateOrderResponse is returned after an order is placed
type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}
