package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Цены и количества отдаются в JSON числами, как и в исходном API
	decimal.MarshalJSONWithoutQuotes = true
}

// Sale - заголовок продажи, привязанный к пользователю
// ВАЖНО: пользователь хранится в другом сервисе, поэтому здесь только его ID
type Sale struct {
	ID          int64           `json:"sale_id"`
	UserID      int64           `json:"user_id"`
	PurchaseRef *uuid.UUID      `json:"purchase_ref,omitempty"` // заполняется процессом покупки
	SaleDate    time.Time       `json:"sale_date"`
	TotalPrice  decimal.Decimal `json:"total_amount"`
}

// ValidateSalePrice проверяет новую сумму продажи
func ValidateSalePrice(price *decimal.Decimal) error {
	if price == nil {
		return ErrInvalidSaleData
	}
	if price.IsNegative() {
		return ErrInvalidSalePrice
	}
	return nil
}

// SaleDetail - строка продажи: автомобиль, цена за единицу и количество
type SaleDetail struct {
	ID           int64           `json:"saleDetailId"`
	SaleID       int64           `json:"saleId"`
	VehicleID    int64           `json:"vehicleId"`
	Price        decimal.Decimal `json:"price"`
	VehicleCount decimal.Decimal `json:"vehicleCount"`
}

// Validate проверяет корректность строки продажи
func (d *SaleDetail) Validate() error {
	if d.SaleID <= 0 || d.VehicleID <= 0 || d.VehicleID > MaxVehicleID {
		return ErrInvalidSaleDetailData
	}
	if d.Price.IsNegative() || d.VehicleCount.IsNegative() {
		return ErrInvalidSaleDetailData
	}
	return nil
}
