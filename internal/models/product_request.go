package models

// ProductRequest represents the request body for creating or updating a
// product. Price is only checked for being a non-negative number.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Image       string  `json:"image"`
}
