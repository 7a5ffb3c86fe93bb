package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	order    []string
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a repository holding products in catalog order
func NewInMemoryProductRepository(products []models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		order:    make([]string, 0, len(products)),
		products: make(map[string]models.Product, len(products)),
	}

	for _, p := range products {
		if _, exists := r.products[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.products[p.ID] = p
	}

	return r
}

// GetAll returns all products in catalog order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
