package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/pkg/validator"
	"github.com/frontandrew/sales/internal/usecase/purchase"
)

// PurchaseService определяет интерфейс процесса покупки
type PurchaseService interface {
	SubmitPurchase(ctx context.Context, req *purchase.Request) (*purchase.Result, error)
}

// PurchaseHandler обрабатывает оформление покупки
type PurchaseHandler struct {
	purchaseService PurchaseService
	validator       *validator.Validator
	logger          logger.Logger
}

// NewPurchaseHandler создает новый handler
func NewPurchaseHandler(purchaseService PurchaseService, validator *validator.Validator, logger logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		validator:       validator,
		logger:          logger,
	}
}

// AddSales оформляет покупку нескольких автомобилей одной продажей
// POST /sales/addsales
func (h *PurchaseHandler) AddSales(w http.ResponseWriter, r *http.Request) {
	var req purchase.Request
	if err := decodeJSON(r, &req); err != nil {
		respondPurchaseError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondPurchaseError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := h.purchaseService.SubmitPurchase(r.Context(), &req)
	if err != nil {
		pe, ok := domain.AsPurchaseError(err)
		if !ok {
			h.logger.Error("Unexpected purchase failure", logger.Fields{"error": err})
			respondPurchaseError(w, http.StatusInternalServerError, "Processing error: "+err.Error())
			return
		}

		switch {
		case pe.Kind == domain.PurchaseUserNotFound:
			respondPurchaseError(w, http.StatusBadRequest, "Invalid input: "+pe.Message)
		case pe.ClientFault():
			respondPurchaseError(w, http.StatusBadRequest, "Processing error: "+pe.Message)
		default:
			respondPurchaseError(w, http.StatusInternalServerError, "Processing error: "+pe.Message)
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondPurchaseError - ответ с ошибкой покупки: {"status":"error","message":...}
func respondPurchaseError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{
		"status":  "error",
		"message": message,
	})
}
