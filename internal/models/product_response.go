package models

import "storefront-be/internal/entities"

// ProductListResponse is one page of the catalog
type ProductListResponse struct {
	Products    []*entities.Product `json:"products"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
}

// CreateProductResponse is returned after an admin creates a product
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"productId"`
}
