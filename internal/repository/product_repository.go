package repository

import (
	"database/sql"
	"fmt"

	"storefront-be/internal/entities"
)

// ProductRepository defines the interface for catalog database operations
type ProductRepository interface {
	List(search string, limit, offset int) ([]*entities.Product, error)
	Count(search string) (int, error)
	FindByID(id int64) (*entities.Product, error)
	Create(name, description string, price float64, image string) (*entities.Product, error)
	Update(id int64, name, description string, price float64, image string) error
	Delete(id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns one page of products whose name contains search.
// ILIKE keeps the match case-insensitive, matching how the storefront
// search behaves against SQLite-style LIKE.
func (r *productRepository) List(search string, limit, offset int) ([]*entities.Product, error) {
	query := `
		SELECT id, name, description, price, image, created_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		var p entities.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of products matching search
func (r *productRepository) Count(search string) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE name ILIKE '%' || $1 || '%'`

	var count int
	if err := r.db.QueryRow(query, search).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// FindByID finds a product by id
func (r *productRepository) FindByID(id int64) (*entities.Product, error) {
	query := `
		SELECT id, name, description, price, image, created_at
		FROM products
		WHERE id = $1
	`

	var p entities.Product
	err := r.db.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product
func (r *productRepository) Create(name, description string, price float64, image string) (*entities.Product, error) {
	query := `
		INSERT INTO products (name, description, price, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, image, created_at
	`

	var p entities.Product
	err := r.db.QueryRow(query, name, description, price, image).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &p, nil
}

// Update replaces the mutable fields of a product
func (r *productRepository) Update(id int64, name, description string, price float64, image string) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, image = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, name, description, price, image)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
