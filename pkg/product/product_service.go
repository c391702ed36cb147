package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/entities"
	"github.com/familia-davanzo/assados-backend/internal/utils/storage"
	"github.com/familia-davanzo/assados-backend/pkg/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) error
		DeleteProduct(ctx context.Context, id string) error
		GetMenu(ctx context.Context, category string) ([]domain.ProductResponse, error)
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest) error
	}

	productService struct {
		productRepository ProductRepository
		inventoryService  inventory.InventoryService
		s3                storage.AwsS3
	}
)

func NewProductService(
	productRepository ProductRepository,
	inventoryService inventory.InventoryService,
	s3 storage.AwsS3,
) ProductService {
	return &productService{
		productRepository: productRepository,
		inventoryService:  inventoryService,
		s3:                s3,
	}
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	product := &entities.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Price:       price,
		Category:    req.Category,
		Description: req.Description,
	}

	lines, err := buildRecipeLines(product.ID, req.Ingredients)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	product.Ingredients = lines

	if err := s.productRepository.AddProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	return domain.ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
		CreatedAt: product.CreatedAt,
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) error {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != "" {
		price, err := parsePrice(req.Price)
		if err != nil {
			return err
		}
		product.Price = price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Description != "" {
		product.Description = req.Description
	}

	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return err
	}

	if req.Ingredients != nil {
		lines, err := buildRecipeLines(product.ID, req.Ingredients)
		if err != nil {
			return err
		}
		return s.productRepository.ReplaceIngredients(ctx, id, lines)
	}

	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if product.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.productRepository.DeleteProduct(ctx, id)
}

// GetMenu lists products with their derived stock badge. The badge is
// advisory only, products stay orderable whatever the badge says.
func (s *productService) GetMenu(ctx context.Context, category string) ([]domain.ProductResponse, error) {
	products, err := s.productRepository.GetProducts(ctx, category)
	if err != nil {
		return nil, err
	}

	var response []domain.ProductResponse
	for _, product := range products {
		stock, err := s.inventoryService.Availability(ctx, product.Ingredients)
		if err != nil {
			return nil, err
		}

		var lines []domain.RecipeLineResponse
		for _, ing := range product.Ingredients {
			lines = append(lines, domain.RecipeLineResponse{
				InventoryItemID: ing.InventoryItemID.String(),
				Quantity:        ing.Quantity,
				Unit:            ing.Unit,
			})
		}

		response = append(response, domain.ProductResponse{
			ID:          product.ID.String(),
			Name:        product.Name,
			Price:       product.Price,
			Category:    product.Category,
			Description: product.Description,
			ImageURL:    product.ImageURL,
			Stock:       stock,
			Ingredients: lines,
			CreatedAt:   product.CreatedAt,
		})
	}

	return response, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest) error {
	product, err := s.productRepository.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	fileName := fmt.Sprintf("product-%s", product.ID.String())
	var objectKey string
	var uploadErr error

	if product.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	product.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.productRepository.UpdateProduct(ctx, product)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Decimal{}, domain.ErrInvalidPrice
	}
	return price, nil
}

func buildRecipeLines(productID uuid.UUID, reqs []domain.RecipeLineRequest) ([]*entities.ProductIngredient, error) {
	var lines []*entities.ProductIngredient
	for _, line := range reqs {
		itemID, err := uuid.Parse(line.InventoryItemID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		qty, err := decimal.NewFromString(line.Quantity)
		if err != nil || !qty.IsPositive() {
			return nil, domain.ErrInvalidEntryQuantity
		}
		lines = append(lines, &entities.ProductIngredient{
			ID:              uuid.New(),
			ProductID:       productID,
			InventoryItemID: itemID,
			Quantity:        qty,
			Unit:            line.Unit,
		})
	}
	return lines, nil
}
