package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"storefront-be/internal/entities"
	"storefront-be/internal/models"
	"storefront-be/internal/repository"
)

// fakeProductRepo is an in-memory stand-in for the product repository
type fakeProductRepo struct {
	products []*entities.Product
	nextID   int64
}

func (f *fakeProductRepo) matching(search string) []*entities.Product {
	var out []*entities.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeProductRepo) List(search string, limit, offset int) ([]*entities.Product, error) {
	matched := f.matching(search)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeProductRepo) Count(search string) (int, error) {
	return len(f.matching(search)), nil
}

func (f *fakeProductRepo) FindByID(id int64) (*entities.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) Create(name, description string, price float64, image string) (*entities.Product, error) {
	f.nextID++
	p := &entities.Product{ID: f.nextID, Name: name, Description: description, Price: price, Image: image}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeProductRepo) Update(id int64, name, description string, price float64, image string) error {
	p, err := f.FindByID(id)
	if err != nil {
		return err
	}
	p.Name, p.Description, p.Price, p.Image = name, description, price, image
	return nil
}

func (f *fakeProductRepo) Delete(id int64) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func seedProducts(repo *fakeProductRepo, n int) {
	for i := 0; i < n; i++ {
		repo.Create(fmt.Sprintf("Widget %02d", i), "A widget", 9.99, "")
	}
}

func TestCatalogList_PageNeverExceedsPageSize(t *testing.T) {
	repo := &fakeProductRepo{}
	seedProducts(repo, 25)
	svc := NewCatalogService(repo, nil)

	for page := 1; page <= 4; page++ {
		resp, err := svc.List(page, 10, "")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(resp.Products) > 10 {
			t.Errorf("Page %d: expected at most 10 products, got %d", page, len(resp.Products))
		}
	}
}

func TestCatalogList_TotalPagesIsCeiling(t *testing.T) {
	cases := []struct {
		count    int
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}

	for _, tc := range cases {
		repo := &fakeProductRepo{}
		seedProducts(repo, tc.count)
		svc := NewCatalogService(repo, nil)

		resp, err := svc.List(1, tc.pageSize, "")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if resp.TotalPages != tc.want {
			t.Errorf("count=%d pageSize=%d: expected totalPages %d, got %d",
				tc.count, tc.pageSize, tc.want, resp.TotalPages)
		}
	}
}

func TestCatalogList_OutOfRangePageIsEmpty(t *testing.T) {
	repo := &fakeProductRepo{}
	seedProducts(repo, 5)
	svc := NewCatalogService(repo, nil)

	resp, err := svc.List(99, 10, "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resp.Products) != 0 {
		t.Errorf("Expected an empty page, got %d products", len(resp.Products))
	}
	if resp.CurrentPage != 99 {
		t.Errorf("Expected currentPage 99, got %d", resp.CurrentPage)
	}
}

func TestCatalogList_SearchFilters(t *testing.T) {
	repo := &fakeProductRepo{}
	repo.Create("Blue T-Shirt", "", 19.99, "")
	repo.Create("Red Hoodie", "", 45.99, "")
	repo.Create("Blue Sneakers", "", 69.99, "")
	svc := NewCatalogService(repo, nil)

	resp, err := svc.List(1, 10, "blue")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(resp.Products))
	}
	if resp.TotalPages != 1 {
		t.Errorf("Expected totalPages 1, got %d", resp.TotalPages)
	}
}

func TestCatalogGet_NotFound(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{}, nil)

	_, err := svc.Get(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestCatalogUpdate_MissingProduct(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{}, nil)

	err := svc.Update(999, &models.ProductRequest{Name: "X", Price: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}
