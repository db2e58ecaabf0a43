package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/repository"
	"github.com/google/uuid"
)

// DefaultUserLookupTimeout - время ожидания ответа сервиса пользователей по умолчанию
const DefaultUserLookupTimeout = 5 * time.Second

// StatusSuccess и MessageSuccess - поля ответа при успешной покупке
const (
	StatusSuccess  = "success"
	MessageSuccess = "Sales processed successfully"
)

// UserDirectory - источник данных о пользователях
type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Request - запрос на покупку: пользователь и список позиций
type Request struct {
	UserID   int64                        `json:"userId" validate:"required,gt=0"`
	Vehicles []domain.VehiclePurchaseLine `json:"vehicles" validate:"required,min=1,dive"`
}

// Result - итог успешной покупки. SaleDetails повторяет исходный запрос.
type Result struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	SaleDetails *Request  `json:"saleDetails"`
	PurchaseRef uuid.UUID `json:"purchaseRef"`
}

// Service проводит покупку: проверка пользователя, сериализация позиций,
// атомарная запись и разбор статуса хранилища
type Service struct {
	users         UserDirectory
	store         repository.PurchaseStore
	logger        logger.Logger
	lookupTimeout time.Duration
	newRef        func() uuid.UUID
}

// NewService создает новый экземпляр PurchaseService.
// lookupTimeout <= 0 заменяется на DefaultUserLookupTimeout.
func NewService(
	users UserDirectory,
	store repository.PurchaseStore,
	logger logger.Logger,
	lookupTimeout time.Duration,
) *Service {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultUserLookupTimeout
	}
	return &Service{
		users:         users,
		store:         store,
		logger:        logger,
		lookupTimeout: lookupTimeout,
		newRef:        uuid.New,
	}
}

// SubmitPurchase проводит покупку целиком.
// Ошибки возвращаются как *domain.PurchaseError; при любой ошибке в хранилище ничего не записано.
func (s *Service) SubmitPurchase(ctx context.Context, req *Request) (*Result, error) {
	log := s.logger.With("user_id", req.UserID)

	log.Info("Processing purchase", logger.Fields{
		"lines": len(req.Vehicles),
	})

	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	vehiclesJSON, err := json.Marshal(req.Vehicles)
	if err != nil {
		log.Error("Failed to serialize purchase lines", logger.Fields{"error": err})
		return nil, domain.NewSerializationError(err)
	}

	ref := s.newRef()
	log = log.With("purchase_ref", ref.String())

	status, err := s.store.InsertSaleRecords(ctx, req.UserID, ref, vehiclesJSON)
	if err != nil {
		log.Error("Failed to store purchase", logger.Fields{"error": err})
		return nil, domain.NewPersistenceError(err.Error(), false, err)
	}

	outcome := classifyStatus(status)
	if !outcome.committed {
		log.Warn("Purchase rejected by store", logger.Fields{
			"code":         status.Code,
			"message":      status.Message,
			"client_fault": outcome.clientFault,
		})
		return nil, domain.NewPersistenceError(status.Message, outcome.clientFault, nil)
	}

	log.Info("Purchase stored successfully")

	return &Result{
		Status:      StatusSuccess,
		Message:     MessageSuccess,
		SaleDetails: req,
		PurchaseRef: ref,
	}, nil
}

// ensureUser проверяет, что пользователь существует, не дольше lookupTimeout
func (s *Service) ensureUser(ctx context.Context, userID int64) error {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.users.GetUser(lookupCtx, userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		s.logger.Warn("User not found", logger.Fields{"user_id": userID})
		return domain.NewUserNotFoundError(userID)
	case err != nil:
		s.logger.Error("Failed to fetch user", logger.Fields{
			"user_id": userID,
			"error":   err,
		})
		return domain.NewUpstreamError(userID, fmt.Errorf("%w: %v", domain.ErrUserServiceUnavailable, err))
	case user == nil:
		return domain.NewUserNotFoundError(userID)
	}

	return nil
}
