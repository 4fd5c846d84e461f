package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/cache"
	"storefront-be/internal/entities"
	"storefront-be/internal/models"
	"storefront-be/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50

	productCacheTTL = 5 * time.Minute
)

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	List(page, pageSize int, search string) (*models.ProductListResponse, error)
	Get(id int64) (*entities.Product, error)
	Create(req *models.ProductRequest) (*entities.Product, error)
	Update(id int64, req *models.ProductRequest) error
	Delete(id int64) error
}

type catalogService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ctx   context.Context
}

// NewCatalogService creates a new catalog service. The cache may be nil,
// in which case every lookup goes to the database.
func NewCatalogService(repo repository.ProductRepository, cacheClient cache.Cache) CatalogService {
	svc := &catalogService{
		repo: repo,
		ctx:  context.Background(),
	}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// List returns one page of products matching search. Pages are 1-based;
// a page past the end yields an empty list, not an error.
func (s *catalogService) List(page, pageSize int, search string) (*models.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	count, err := s.repo.Count(search)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.List(search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*entities.Product{}
	}

	return &models.ProductListResponse{
		Products:    products,
		TotalPages:  (count + pageSize - 1) / pageSize,
		CurrentPage: page,
	}, nil
}

// Get returns one product, serving repeat lookups from the cache
func (s *catalogService) Get(id int64) (*entities.Product, error) {
	if s.cache != nil {
		var cached entities.Product
		if err := s.cache.GetJSON(s.ctx, productCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, productCacheKey(id), product, productCacheTTL)
	}

	return product, nil
}

// Create inserts a new product
func (s *catalogService) Create(req *models.ProductRequest) (*entities.Product, error) {
	return s.repo.Create(req.Name, req.Description, req.Price, req.Image)
}

// Update replaces a product's fields and invalidates its cache entry
func (s *catalogService) Update(id int64, req *models.ProductRequest) error {
	err := s.repo.Update(id, req.Name, req.Description, req.Price, req.Image)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, productCacheKey(id))
	}

	return nil
}

// Delete removes a product and invalidates its cache entry
func (s *catalogService) Delete(id int64) error {
	err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, productCacheKey(id))
	}

	return nil
}
