package handlers

import (
	"errors"

	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/internal/api/presenters"
	"github.com/familia-davanzo/assados-backend/pkg/product"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		AddProduct(c *fiber.Ctx) error
		UpdateProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		GetMenu(c *fiber.Ctx) error
		UploadProductImage(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		validator:      validator,
	}
}

func (h *productHandler) AddProduct(c *fiber.Ctx) error {
	req := new(domain.AddProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	res, err := h.productService.AddProduct(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddProduct)
}

func (h *productHandler) UpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	req := new(domain.UpdateProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}

	if err := h.productService.UpdateProduct(c.Context(), productID, *req); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateProduct, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateProduct)
}

func (h *productHandler) DeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	if err := h.productService.DeleteProduct(c.Context(), productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteProduct, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

func (h *productHandler) GetMenu(c *fiber.Ctx) error {
	category := c.Query("category", "")

	res, err := h.productService.GetMenu(c.Context(), category)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) UploadProductImage(c *fiber.Ctx) error {
	req := new(domain.UploadProductImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	if err := h.productService.UploadProductImage(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUploadImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
