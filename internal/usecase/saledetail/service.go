package saledetail

import (
	"context"
	"fmt"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/repository"
	"github.com/shopspring/decimal"
)

// Request - тело запроса на создание или замену строки продажи.
// Price необязателен и по умолчанию равен 0.
type Request struct {
	SaleID       int64            `json:"saleId" validate:"required,gt=0"`
	VehicleID    int64            `json:"vehicleId" validate:"required,gt=0,lte=2147483647"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	VehicleCount decimal.Decimal  `json:"vehicleCount"`
}

func (r *Request) toDomain(id int64) *domain.SaleDetail {
	detail := &domain.SaleDetail{
		ID:           id,
		SaleID:       r.SaleID,
		VehicleID:    r.VehicleID,
		VehicleCount: r.VehicleCount,
	}
	if r.Price != nil {
		detail.Price = *r.Price
	}
	return detail
}

// Service содержит бизнес-логику работы со строками продаж
type Service struct {
	detailRepo repository.SaleDetailRepository
	logger     logger.Logger
}

// NewService создает новый экземпляр SaleDetailService
func NewService(detailRepo repository.SaleDetailRepository, logger logger.Logger) *Service {
	return &Service{
		detailRepo: detailRepo,
		logger:     logger,
	}
}

// CreateSaleDetail создает строку продажи
func (s *Service) CreateSaleDetail(ctx context.Context, req *Request) (*domain.SaleDetail, error) {
	detail := req.toDomain(0)
	if err := detail.Validate(); err != nil {
		return nil, err
	}

	if err := s.detailRepo.Create(ctx, detail); err != nil {
		return nil, err
	}

	s.logger.Info("Sale detail created", logger.Fields{
		"sale_detail_id": detail.ID,
		"sale_id":        detail.SaleID,
		"vehicle_id":     detail.VehicleID,
	})

	return detail, nil
}

// ListSaleDetails возвращает все строки продаж
func (s *Service) ListSaleDetails(ctx context.Context) ([]*domain.SaleDetail, error) {
	details, err := s.detailRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale details: %w", err)
	}
	return details, nil
}

// GetSaleDetail возвращает строку продажи по ID
func (s *Service) GetSaleDetail(ctx context.Context, id int64) (*domain.SaleDetail, error) {
	return s.detailRepo.GetByID(ctx, id)
}

// GetSaleDetailsBySale возвращает строки продажи.
// Пустой результат считается отсутствием: domain.ErrSaleDetailNotFound.
func (s *Service) GetSaleDetailsBySale(ctx context.Context, saleID int64) ([]*domain.SaleDetail, error) {
	details, err := s.detailRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale details: %w", err)
	}
	if len(details) == 0 {
		return nil, domain.ErrSaleDetailNotFound
	}
	return details, nil
}

// UpdateSaleDetail полностью заменяет строку продажи, ID сохраняется
func (s *Service) UpdateSaleDetail(ctx context.Context, id int64, req *Request) (*domain.SaleDetail, error) {
	detail := req.toDomain(id)
	if err := detail.Validate(); err != nil {
		return nil, err
	}

	if err := s.detailRepo.Update(ctx, detail); err != nil {
		return nil, err
	}

	s.logger.Info("Sale detail updated", logger.Fields{"sale_detail_id": id})
	return detail, nil
}

// DeleteSaleDetail удаляет строку продажи
func (s *Service) DeleteSaleDetail(ctx context.Context, id int64) error {
	if err := s.detailRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Sale detail deleted", logger.Fields{"sale_detail_id": id})
	return nil
}
