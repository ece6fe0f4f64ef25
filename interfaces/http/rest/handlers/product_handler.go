package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"novamarket/application/services"
	"novamarket/domain/core/entities"
	"novamarket/pkg/common"
	"novamarket/pkg/errors"
	"novamarket/pkg/utils"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required,min=1,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image" validate:"required,url"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=1000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,url"`
}

// DeleteProductResponse represents the response for deleting a product
type DeleteProductResponse struct {
	Message string            `json:"message"`
	Product *entities.Product `json:"product"`
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch products", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.LabelInternalError, "Failed to fetch products")
		return
	}

	common.RespondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !entities.IsValidID(id) {
		common.RespondError(w, http.StatusBadRequest, common.LabelInvalidID, "Product ID format is invalid")
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, common.LabelNotFound,
				fmt.Sprintf("Product with ID %s does not exist", id))
			return
		}
		h.logger.Error("Failed to fetch product", zap.String("id", id), zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.LabelInternalError, "Failed to fetch product")
		return
	}

	common.RespondJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError,
			"All fields (name, description, price, image) are required")
		return
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, err.Error())
		return
	}

	product := &entities.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Image:       strings.TrimSpace(req.Image),
	}

	if err := h.service.Create(r.Context(), product); err != nil {
		if errors.IsValidation(err) {
			common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, errors.GetAppError(err).Message)
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.LabelInternalError, "Failed to create product")
		return
	}

	common.RespondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !entities.IsValidID(id) {
		common.RespondError(w, http.StatusBadRequest, common.LabelInvalidID, "Product ID format is invalid")
		return
	}

	var req UpdateProductRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, err.Error())
		return
	}

	update := entities.ProductUpdate{
		Name:        trimmed(req.Name),
		Description: trimmed(req.Description),
		Price:       req.Price,
		Image:       trimmed(req.Image),
	}

	product, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		if errors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, common.LabelNotFound,
				fmt.Sprintf("Product with ID %s does not exist", id))
			return
		}
		if errors.IsValidation(err) {
			common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, errors.GetAppError(err).Message)
			return
		}
		h.logger.Error("Failed to update product", zap.String("id", id), zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.LabelInternalError, "Failed to update product")
		return
	}

	common.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !entities.IsValidID(id) {
		common.RespondError(w, http.StatusBadRequest, common.LabelInvalidID, "Product ID format is invalid")
		return
	}

	product, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, common.LabelNotFound,
				fmt.Sprintf("Product with ID %s does not exist", id))
			return
		}
		h.logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.LabelInternalError, "Failed to delete product")
		return
	}

	common.RespondJSON(w, http.StatusOK, DeleteProductResponse{
		Message: "Product deleted successfully",
		Product: product,
	})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
