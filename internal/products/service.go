package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/museshop/backend/pkg/db"
	"github.com/museshop/backend/pkg/db/models"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service exposes catalog read paths plus staff product management.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	ListFavorites(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
	SetFavorite(ctx context.Context, id int64, favorite bool) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context) (int, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Description string
	Category    string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    *string
	Description *string
	Category    *string
}

type service struct {
	repo Repository
}

// NewService constructs a product service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.ListByName(ctx)
	if err != nil {
		return nil, db.Translate(err, "listing products")
	}
	return rows, nil
}

func (s *service) ListFavorites(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.ListFavorites(ctx)
	if err != nil {
		return nil, db.Translate(err, "listing favorite products")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, fmt.Sprintf("loading product %d", id))
	}
	return product, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	product, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, db.Translate(err, fmt.Sprintf("loading product %q", name))
	}
	return product, nil
}

func (s *service) SetFavorite(ctx context.Context, id int64, favorite bool) (*models.Product, error) {
	if err := s.repo.SetFavorite(ctx, id, favorite); err != nil {
		return nil, db.Translate(err, fmt.Sprintf("updating favorite for product %d", id))
	}
	return s.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validateProductFields(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Category:    input.Category,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, db.Translate(err, fmt.Sprintf("creating product %q", product.Name))
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, fmt.Sprintf("loading product %d", id))
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}

	if err := validateProductFields(product.Name, product.Price, product.Stock); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, db.Translate(err, fmt.Sprintf("updating product %d", id))
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return db.Translate(err, fmt.Sprintf("loading product %d", id))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return db.Translate(err, fmt.Sprintf("deleting product %d", id))
	}
	return nil
}

// SeedIfEmpty inserts the sample catalog when the products table has no rows.
// It returns how many products were inserted.
func (s *service) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, db.Translate(err, "counting products")
	}
	if count > 0 {
		return 0, nil
	}

	catalog := sampleCatalog()
	for i := range catalog {
		if err := s.repo.Create(ctx, &catalog[i]); err != nil {
			return i, db.Translate(err, fmt.Sprintf("seeding product %q", catalog[i].Name))
		}
	}
	return len(catalog), nil
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product stock cannot be negative")
	}
	return nil
}
