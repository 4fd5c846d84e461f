package service

import (
	"math"

	"storefront-be/internal/entities"
	"storefront-be/internal/models"
	"storefront-be/internal/repository"
)

// OrderService defines the interface for order ledger business logic
type OrderService interface {
	Create(userID int64, req *models.CreateOrderRequest) (int64, error)
	List(userID int64, page, pageSize int) (*models.OrderListResponse, error)
}

type orderService struct {
	repo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// Create places an order. The total is recomputed from the submitted unit
// prices and quantities; a client total that disagrees beyond a rounding
// tolerance is rejected rather than trusted.
func (s *orderService) Create(userID int64, req *models.CreateOrderRequest) (int64, error) {
	var computed float64
	items := make([]entities.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		computed += item.Price * float64(item.Quantity)
		items = append(items, entities.OrderItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if math.Abs(computed-req.TotalAmount) > 0.005 {
		return 0, ErrTotalMismatch
	}

	return s.repo.Create(userID, computed, items)
}

// List returns one page of the user's order history, newest first
func (s *orderService) List(userID int64, page, pageSize int) (*models.OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	count, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ListByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*entities.Order{}
	}

	return &models.OrderListResponse{
		Orders:      orders,
		TotalPages:  (count + pageSize - 1) / pageSize,
		CurrentPage: page,
	}, nil
}
