package product

import (
	"context"

	"github.com/familia-davanzo/assados-backend/entities"
	"gorm.io/gorm"
)

type (
	ProductRepository interface {
		AddProduct(ctx context.Context, product *entities.Product) error
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		GetProducts(ctx context.Context, category string) ([]*entities.Product, error)
		UpdateProduct(ctx context.Context, product *entities.Product) error
		ReplaceIngredients(ctx context.Context, productID string, lines []*entities.ProductIngredient) error
		DeleteProduct(ctx context.Context, id string) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) AddProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetProducts(ctx context.Context, category string) ([]*entities.Product, error) {
	var products []*entities.Product

	query := r.db.WithContext(ctx).Preload("Ingredients")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Omit("Ingredients").Save(product).Error
}

// ReplaceIngredients swaps a product's whole recipe atomically. Partial
// recipe updates are not supported, the admin panel always sends the
// full ingredient list.
func (r *productRepository) ReplaceIngredients(ctx context.Context, productID string, lines []*entities.ProductIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).
			Delete(&entities.ProductIngredient{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(lines).Error
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).
			Delete(&entities.ProductIngredient{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Product{}).Error
	})
}
