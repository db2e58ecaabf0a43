package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/pkg/validator"
	"github.com/frontandrew/sales/internal/usecase/sale"
)

// SaleService определяет интерфейс для сервиса продаж
type SaleService interface {
	ListSales(ctx context.Context) ([]*sale.DTO, error)
	GetSale(ctx context.Context, id int64) (*sale.DTO, error)
	UpdateSale(ctx context.Context, id int64, req *sale.UpdateSaleRequest) (*sale.DTO, error)
	DeleteSale(ctx context.Context, id int64) (bool, error)
	ListSalesByUser(ctx context.Context, userID int64) ([]*sale.DTO, error)
}

// SaleHandler обрабатывает запросы связанные с продажами
type SaleHandler struct {
	saleService SaleService
	validator   *validator.Validator
	logger      logger.Logger
}

// NewSaleHandler создает новый handler
func NewSaleHandler(saleService SaleService, validator *validator.Validator, logger logger.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		validator:   validator,
		logger:      logger,
	}
}

// GetAll возвращает все продажи
// GET /sales/getall
func (h *SaleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleService.ListSales(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sales", logger.Fields{"error": err})
		respondError(w, http.StatusInternalServerError, "Failed to fetch sales data")
		return
	}

	respondData(w, http.StatusOK, sales)
}

// GetByID возвращает продажу по ID
// GET /sales/getbyid/{id}
func (h *SaleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	dto, err := h.saleService.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			respondError(w, http.StatusNotFound, "Sale record not found")
			return
		}
		h.logger.Error("Failed to get sale", logger.Fields{"sale_id": id, "error": err})
		respondError(w, http.StatusInternalServerError, "Failed to fetch sale data")
		return
	}

	respondData(w, http.StatusOK, dto)
}

// Update меняет сумму продажи
// PUT /sales/update/{id}
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	var req sale.UpdateSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.saleService.UpdateSale(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSaleNotFound):
			respondError(w, http.StatusNotFound, "Sale record not found")
		case errors.Is(err, domain.ErrInvalidSalePrice), errors.Is(err, domain.ErrInvalidSaleData):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update sale", logger.Fields{"sale_id": id, "error": err})
			respondError(w, http.StatusInternalServerError, "Failed to update sale data")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    dto,
		"message": "Sale updated successfully",
	})
}

// Delete удаляет продажу вместе со строками
// DELETE /sales/delete/{id}
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	deleted, err := h.saleService.DeleteSale(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete sale", logger.Fields{"sale_id": id, "error": err})
		respondError(w, http.StatusInternalServerError, "Failed to delete sale record")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Sale record not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Sale record deleted successfully",
	})
}

// GetByUser возвращает продажи пользователя
// GET /sales/users/{userId}
func (h *SaleHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	sales, err := h.saleService.ListSalesByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("User with ID %d not found", userID))
			return
		}
		h.logger.Error("Failed to list user sales", logger.Fields{"user_id": userID, "error": err})
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch sales data for user ID %d", userID))
		return
	}

	if len(sales) == 0 {
		respondError(w, http.StatusNotFound, fmt.Sprintf("No sales found for user ID %d", userID))
		return
	}

	respondData(w, http.StatusOK, sales)
}
