package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddProduct    = "product added successfully"
	MessageSuccessUpdateProduct = "product updated successfully"
	MessageSuccessDeleteProduct = "product deleted successfully"
	MessageSuccessGetProducts   = "products retrieved successfully"
	MessageSuccessUploadImage   = "product image uploaded successfully"

	MessageFailedAddProduct    = "failed to add product"
	MessageFailedUpdateProduct = "failed to update product"
	MessageFailedDeleteProduct = "failed to delete product"
	MessageFailedGetProducts   = "failed to retrieve products"
	MessageFailedUploadImage   = "failed to upload product image"

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be a non-negative decimal")
)

type (
	RecipeLineRequest struct {
		InventoryItemID string `json:"inventory_item_id" validate:"required,uuid"`
		Quantity        string `json:"quantity" validate:"required"`
		Unit            string `json:"unit" validate:"required"`
	}

	AddProductRequest struct {
		Name        string              `json:"name" validate:"required"`
		Price       string              `json:"price" validate:"required"`
		Category    string              `json:"category" validate:"required"`
		Description string              `json:"description"`
		Ingredients []RecipeLineRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	UpdateProductRequest struct {
		Name        string              `json:"name" validate:"omitempty"`
		Price       string              `json:"price" validate:"omitempty"`
		Category    string              `json:"category" validate:"omitempty"`
		Description string              `json:"description"`
		Ingredients []RecipeLineRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	UploadProductImageRequest struct {
		ProductID string                `json:"product_id" form:"product_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	RecipeLineResponse struct {
		InventoryItemID string          `json:"inventory_item_id"`
		Quantity        decimal.Decimal `json:"quantity"`
		Unit            string          `json:"unit"`
	}

	ProductResponse struct {
		ID          string               `json:"id"`
		Name        string               `json:"name"`
		Price       decimal.Decimal      `json:"price"`
		Category    string               `json:"category"`
		Description string               `json:"description"`
		ImageURL    string               `json:"image_url,omitempty"`
		Stock       string               `json:"stock,omitempty"` // ok, warning, critical
		Ingredients []RecipeLineResponse `json:"ingredients,omitempty"`
		CreatedAt   time.Time            `json:"created_at"`
	}
)
