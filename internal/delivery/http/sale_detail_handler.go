package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/pkg/validator"
	"github.com/frontandrew/sales/internal/usecase/saledetail"
)

// SaleDetailService определяет интерфейс для сервиса строк продаж
type SaleDetailService interface {
	CreateSaleDetail(ctx context.Context, req *saledetail.Request) (*domain.SaleDetail, error)
	ListSaleDetails(ctx context.Context) ([]*domain.SaleDetail, error)
	GetSaleDetail(ctx context.Context, id int64) (*domain.SaleDetail, error)
	GetSaleDetailsBySale(ctx context.Context, saleID int64) ([]*domain.SaleDetail, error)
	UpdateSaleDetail(ctx context.Context, id int64, req *saledetail.Request) (*domain.SaleDetail, error)
	DeleteSaleDetail(ctx context.Context, id int64) error
}

// SaleDetailHandler обрабатывает запросы к строкам продаж.
// Формат ответа: {"success": ...} или {"error": "..."}.
type SaleDetailHandler struct {
	detailService SaleDetailService
	validator     *validator.Validator
	logger        logger.Logger
}

// NewSaleDetailHandler создает новый handler
func NewSaleDetailHandler(detailService SaleDetailService, validator *validator.Validator, logger logger.Logger) *SaleDetailHandler {
	return &SaleDetailHandler{
		detailService: detailService,
		validator:     validator,
		logger:        logger,
	}
}

// Add создает строку продажи
// POST /sales/sales-details/add
func (h *SaleDetailHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r, "Sales Details not added")
	if !ok {
		return
	}

	detail, err := h.detailService.CreateSaleDetail(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSaleDetailData) {
			respondDetailError(w, http.StatusBadRequest, "Sales Details not added: "+err.Error())
			return
		}
		h.logger.Error("Failed to create sale detail", logger.Fields{"error": err})
		respondDetailError(w, http.StatusInternalServerError, "Sales Details not added")
		return
	}

	respondDetail(w, http.StatusCreated, fmt.Sprintf("Sales Details Added Successfully: %d", detail.ID))
}

// GetAll возвращает все строки продаж
// GET /sales/sales-details/getall
func (h *SaleDetailHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	details, err := h.detailService.ListSaleDetails(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sale details", logger.Fields{"error": err})
		respondDetailError(w, http.StatusInternalServerError, "Could not fetch sales details")
		return
	}

	respondDetail(w, http.StatusOK, details)
}

// GetByID возвращает строку продажи по ID
// GET /sales/sales-details/getbyid/{id}
func (h *SaleDetailHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondDetailError(w, http.StatusBadRequest, "Invalid sales details ID")
		return
	}

	detail, err := h.detailService.GetSaleDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSaleDetailNotFound) {
			respondDetailError(w, http.StatusNotFound, fmt.Sprintf("Sales Details with ID %d not found", id))
			return
		}
		h.logger.Error("Failed to get sale detail", logger.Fields{"sale_detail_id": id, "error": err})
		respondDetailError(w, http.StatusInternalServerError, "Could not fetch sales details")
		return
	}

	respondDetail(w, http.StatusOK, detail)
}

// GetBySaleID возвращает строки одной продажи
// GET /sales/sales-details/getbysaleid/{saleId}
func (h *SaleDetailHandler) GetBySaleID(w http.ResponseWriter, r *http.Request) {
	saleID, err := parseIDParam(r, "saleId")
	if err != nil {
		respondDetailError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	details, err := h.detailService.GetSaleDetailsBySale(r.Context(), saleID)
	if err != nil {
		if errors.Is(err, domain.ErrSaleDetailNotFound) {
			respondDetailError(w, http.StatusNotFound, fmt.Sprintf("Sales Details with Sale ID %d not found", saleID))
			return
		}
		h.logger.Error("Failed to get sale details by sale", logger.Fields{"sale_id": saleID, "error": err})
		respondDetailError(w, http.StatusInternalServerError, "Could not fetch sales details")
		return
	}

	respondDetail(w, http.StatusOK, details)
}

// Update полностью заменяет строку продажи
// PUT /sales/sales-details/update/{id}
func (h *SaleDetailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondDetailError(w, http.StatusBadRequest, "Invalid sales details ID")
		return
	}

	req, ok := h.decodeRequest(w, r, "Sales Details not updated")
	if !ok {
		return
	}

	detail, err := h.detailService.UpdateSaleDetail(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSaleDetailNotFound):
			respondDetailError(w, http.StatusNotFound, fmt.Sprintf("Sales Details with ID %d not found", id))
		case errors.Is(err, domain.ErrInvalidSaleDetailData):
			respondDetailError(w, http.StatusBadRequest, "Sales Details not updated: "+err.Error())
		default:
			h.logger.Error("Failed to update sale detail", logger.Fields{"sale_detail_id": id, "error": err})
			respondDetailError(w, http.StatusInternalServerError, "Sales Details not updated")
		}
		return
	}

	respondDetail(w, http.StatusOK, fmt.Sprintf("Sales Details Updated Successfully: %d", detail.ID))
}

// Delete удаляет строку продажи
// DELETE /sales/sales-details/delete/{id}
func (h *SaleDetailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondDetailError(w, http.StatusBadRequest, "Invalid sales details ID")
		return
	}

	if err := h.detailService.DeleteSaleDetail(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrSaleDetailNotFound) {
			respondDetailError(w, http.StatusNotFound, fmt.Sprintf("Sales Details with ID %d not found", id))
			return
		}
		h.logger.Error("Failed to delete sale detail", logger.Fields{"sale_detail_id": id, "error": err})
		respondDetailError(w, http.StatusInternalServerError, "Sales Details not deleted")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SaleDetailHandler) decodeRequest(w http.ResponseWriter, r *http.Request, failure string) (*saledetail.Request, bool) {
	var req saledetail.Request
	if err := decodeJSON(r, &req); err != nil {
		respondDetailError(w, http.StatusBadRequest, failure+": "+err.Error())
		return nil, false
	}
	if err := h.validator.Struct(&req); err != nil {
		respondDetailError(w, http.StatusBadRequest, failure+": "+err.Error())
		return nil, false
	}
	return &req, true
}
