package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"storefront-be/internal/entities"
)

// OrderRepository defines the interface for order ledger database operations
type OrderRepository interface {
	Create(userID int64, totalAmount float64, items []entities.OrderItem) (int64, error)
	ListByUser(userID int64, limit, offset int) ([]*entities.Order, error)
	CountByUser(userID int64) (int, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order row and its item rows in a single transaction.
// A failure after the order insert rolls everything back, so an order can
// never exist with fewer items than were submitted.
func (r *orderRepository) Create(userID int64, totalAmount float64, items []entities.OrderItem) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRow(`
		INSERT INTO orders (user_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, totalAmount, entities.OrderStatusPending).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.Exec(orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return 0, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}

	return orderID, nil
}

// ListByUser returns one page of a user's orders, newest first, each
// annotated with its items and the current product name.
func (r *orderRepository) ListByUser(userID int64, limit, offset int) ([]*entities.Order, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, total_amount, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entities.Order
	var orderIDs []int64
	index := make(map[int64]*entities.Order)

	for rows.Next() {
		var o entities.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Items = []entities.OrderItem{}
		orders = append(orders, &o)
		orderIDs = append(orderIDs, o.ID)
		index[o.ID] = &o
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item entities.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return orders, nil
}

// CountByUser returns the number of orders owned by the user
func (r *orderRepository) CountByUser(userID int64) (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
