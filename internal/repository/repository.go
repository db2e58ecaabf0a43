package repository

import (
	"context"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRepository определяет методы для работы с продажами
type SaleRepository interface {
	// List возвращает все продажи
	List(ctx context.Context) ([]*domain.Sale, error)

	// GetByID возвращает продажу по ID
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)

	// GetByUserID возвращает все продажи пользователя
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Sale, error)

	// UpdatePrice меняет итоговую сумму и возвращает обновленную продажу.
	// Если продажи нет, возвращает domain.ErrSaleNotFound и ничего не пишет.
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*domain.Sale, error)

	// Delete удаляет продажу вместе с ее строками
	Delete(ctx context.Context, id int64) error
}

// SaleDetailRepository определяет методы для работы со строками продаж
type SaleDetailRepository interface {
	// Create создает строку продажи
	Create(ctx context.Context, detail *domain.SaleDetail) error

	// List возвращает все строки продаж
	List(ctx context.Context) ([]*domain.SaleDetail, error)

	// GetByID возвращает строку по ID
	GetByID(ctx context.Context, id int64) (*domain.SaleDetail, error)

	// GetBySaleID возвращает все строки продажи
	GetBySaleID(ctx context.Context, saleID int64) ([]*domain.SaleDetail, error)

	// Update полностью заменяет строку, сохраняя ее ID
	Update(ctx context.Context, detail *domain.SaleDetail) error

	// Delete удаляет строку
	Delete(ctx context.Context, id int64) error
}

// PurchaseStore - атомарная вставка продажи вместе со всеми строками.
// КЛЮЧЕВОЙ МЕТОД процесса покупки: либо пишется все, либо ничего.
type PurchaseStore interface {
	// InsertSaleRecords вызывает процедуру insert_sale_records и возвращает ее статус.
	// Ошибка возвращается только при сбое самого вызова (сеть, транзакция).
	InsertSaleRecords(ctx context.Context, userID int64, purchaseRef uuid.UUID, vehiclesJSON []byte) (*domain.StoreStatus, error)
}
