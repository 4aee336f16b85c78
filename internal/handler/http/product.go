package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/handler/http/response"
)

type ProductHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	LowStock(w http.ResponseWriter, r *http.Request)
}

type productHandlerImpl struct {
	productService product.ProductService
}

func NewProductHandler(productService product.ProductService) ProductHandler {
	return &productHandlerImpl{
		productService: productService,
	}
}

// List implements ProductHandler.
func (h *productHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := product.ProductFilter{
		Name:     queryString(r, "name"),
		Category: queryString(r, "category"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}
	if v := r.URL.Query().Get("lowStock"); v != "" {
		lowStock, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "lowStock must be true or false", nil)
			return
		}
		filter.LowStock = &lowStock
	}

	result, err := h.productService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.PageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Get implements ProductHandler.
func (h *productHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.productService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements ProductHandler.
func (h *productHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req product.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProduct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.productService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Product created successfully", result)
}

// Update implements ProductHandler.
func (h *productHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req product.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProduct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.productService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product updated successfully", result)
}

// Delete implements ProductHandler.
func (h *productHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product deleted successfully", nil)
}

// LowStock implements ProductHandler.
func (h *productHandlerImpl) LowStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.productService.LowStock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
