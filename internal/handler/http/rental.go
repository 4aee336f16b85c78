package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willykudo/pionix/internal/domain/rental"
	"github.com/willykudo/pionix/internal/handler/http/response"
)

type RentalHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type rentalHandlerImpl struct {
	rentalService rental.RentalService
}

func NewRentalHandler(rentalService rental.RentalService) RentalHandler {
	return &rentalHandlerImpl{
		rentalService: rentalService,
	}
}

// List implements RentalHandler.
func (h *rentalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := rental.RentalFilter{
		Search: queryString(r, "search"),
		Status: queryString(r, "rentalStatus"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	result, err := h.rentalService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.PageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Get implements RentalHandler.
func (h *rentalHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.rentalService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseRentalForm reads the multipart rental form. The caller closes req.File when set.
func parseRentalForm(r *http.Request) (rental.RentalRequest, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		return rental.RentalRequest{}, false
	}

	req := rental.RentalRequest{
		RentalID:           r.FormValue("rentalId"),
		EquipmentName:      r.FormValue("equipmentName"),
		RentalStatus:       r.FormValue("rentalStatus"),
		CustomerName:       r.FormValue("customerName"),
		RentalDuration:     r.FormValue("rentalDuration"),
		RentalPrice:        r.FormValue("rentalPrice"),
		EquipmentCondition: r.FormValue("equipmentCondition"),
		Description:        r.FormValue("description"),
		RentalDate:         r.FormValue("rentalDate"),
		ReturnDate:         r.FormValue("returnDate"),
	}

	file, fileHeader, err := formFile(r, "rentalImage")
	if err != nil {
		slog.Error("Failed to get file from form", "error", err)
		return rental.RentalRequest{}, false
	}
	req.File = file
	req.FileHeader = fileHeader
	return req, true
}

// Create implements RentalHandler.
func (h *rentalHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRentalForm(r)
	if !ok {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}

	result, err := h.rentalService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateRental service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rental created successfully", result)
}

// Update implements RentalHandler.
func (h *rentalHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRentalForm(r)
	if !ok {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.rentalService.Update(r.Context(), req)
	if err != nil {
		slog.Error("UpdateRental service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rental updated successfully", result)
}

// Delete implements RentalHandler.
func (h *rentalHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.rentalService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rental deleted successfully", nil)
}
