package products

import (
	"context"

	"github.com/museshop/backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for catalog products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	ListByName(ctx context.Context) ([]models.Product, error)
	ListFavorites(ctx context.Context) ([]models.Product, error)
	SetFavorite(ctx context.Context, id int64, favorite bool) error
	DecrementStock(ctx context.Context, id int64, quantity int) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a product repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListByName(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) ListFavorites(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_favorite", favorite)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock subtracts quantity from the product's stock only when enough
// stock remains. It reports whether the decrement was applied.
func (r *repository) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
