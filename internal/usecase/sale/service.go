package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/repository"
	"github.com/shopspring/decimal"
)

// SaleDateLayout - формат даты продажи в ответах API
const SaleDateLayout = "2006-01-02 15:04:05"

// DTO - представление продажи для клиента. Данные пользователя не встраиваются.
type DTO struct {
	SaleID    int64           `json:"saleId"`
	SalePrice decimal.Decimal `json:"salePrice"`
	UserID    int64           `json:"userId"`
	SaleDate  string          `json:"saleDate"`
}

// UpdateSaleRequest - запрос на изменение продажи. Меняется только сумма.
type UpdateSaleRequest struct {
	SalePrice *decimal.Decimal `json:"salePrice" validate:"required"`
}

// UserDirectory - источник данных о пользователях
type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Service содержит бизнес-логику работы с продажами
type Service struct {
	saleRepo repository.SaleRepository
	users    UserDirectory
	logger   logger.Logger
}

// NewService создает новый экземпляр SaleService
func NewService(saleRepo repository.SaleRepository, users UserDirectory, logger logger.Logger) *Service {
	return &Service{
		saleRepo: saleRepo,
		users:    users,
		logger:   logger,
	}
}

// ListSales возвращает все продажи
func (s *Service) ListSales(ctx context.Context) ([]*DTO, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return toDTOs(sales), nil
}

// GetSale возвращает продажу по ID
func (s *Service) GetSale(ctx context.Context, id int64) (*DTO, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(sale), nil
}

// UpdateSale меняет сумму продажи. Отсутствующая продажа не создается.
func (s *Service) UpdateSale(ctx context.Context, id int64, req *UpdateSaleRequest) (*DTO, error) {
	if req == nil {
		return nil, domain.ErrInvalidSaleData
	}
	if err := domain.ValidateSalePrice(req.SalePrice); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.UpdatePrice(ctx, id, *req.SalePrice)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale updated", logger.Fields{
		"sale_id":    id,
		"sale_price": req.SalePrice.String(),
	})

	return toDTO(sale), nil
}

// DeleteSale удаляет продажу вместе со строками. Возвращает false, если продажи не было.
func (s *Service) DeleteSale(ctx context.Context, id int64) (bool, error) {
	err := s.saleRepo.Delete(ctx, id)
	if errors.Is(err, domain.ErrSaleNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete sale: %w", err)
	}

	s.logger.Info("Sale deleted", logger.Fields{"sale_id": id})
	return true, nil
}

// ListSalesByUser возвращает продажи пользователя.
// Сначала проверяет пользователя: неизвестный пользователь - domain.ErrUserNotFound.
func (s *Service) ListSalesByUser(ctx context.Context, userID int64) ([]*DTO, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	sales, err := s.saleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user sales: %w", err)
	}

	return toDTOs(sales), nil
}

func toDTO(sale *domain.Sale) *DTO {
	return &DTO{
		SaleID:    sale.ID,
		SalePrice: sale.TotalPrice,
		UserID:    sale.UserID,
		SaleDate:  sale.SaleDate.Format(SaleDateLayout),
	}
}

func toDTOs(sales []*domain.Sale) []*DTO {
	dtos := make([]*DTO, 0, len(sales))
	for _, sale := range sales {
		dtos = append(dtos, toDTO(sale))
	}
	return dtos
}
