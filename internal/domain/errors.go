package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки - используются во всех слоях приложения

// Sale errors
var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrInvalidSaleData  = errors.New("invalid sale data")
	ErrInvalidSalePrice = errors.New("sale price must not be negative")
)

// SaleDetail errors
var (
	ErrSaleDetailNotFound    = errors.New("sale detail not found")
	ErrInvalidSaleDetailData = errors.New("invalid sale detail data")
)

// User directory errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserServiceUnavailable = errors.New("user service unavailable")
)

// Authorization errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// PurchaseErrorKind - категория ошибки процесса покупки
type PurchaseErrorKind int

const (
	// PurchaseUserNotFound - пользователь отсутствует в сервисе пользователей
	PurchaseUserNotFound PurchaseErrorKind = iota + 1
	// PurchaseSerialization - не удалось сериализовать позиции заказа
	PurchaseSerialization
	// PurchasePersistence - хранилище вернуло статус ошибки или упало
	PurchasePersistence
	// PurchaseUpstreamUnavailable - сервис пользователей недоступен
	PurchaseUpstreamUnavailable
)

func (k PurchaseErrorKind) String() string {
	switch k {
	case PurchaseUserNotFound:
		return "user_not_found"
	case PurchaseSerialization:
		return "serialization"
	case PurchasePersistence:
		return "persistence"
	case PurchaseUpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "unknown"
	}
}

// PurchaseError - типизированная ошибка процесса покупки.
// ClientInput отмечает ошибки, вызванные входными данными (HTTP 400).
type PurchaseError struct {
	Kind        PurchaseErrorKind
	Message     string
	UserID      int64
	ClientInput bool
	Err         error
}

func (e *PurchaseError) Error() string {
	return e.Message
}

func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// ClientFault сообщает, виноват ли клиент (неверный ввод), а не сервер
func (e *PurchaseError) ClientFault() bool {
	return e.Kind == PurchaseUserNotFound || e.ClientInput
}

// NewUserNotFoundError создает ошибку отсутствующего пользователя
func NewUserNotFoundError(userID int64) *PurchaseError {
	return &PurchaseError{
		Kind:    PurchaseUserNotFound,
		Message: fmt.Sprintf("User with ID %d not found", userID),
		UserID:  userID,
		Err:     ErrUserNotFound,
	}
}

// NewSerializationError создает ошибку сериализации позиций заказа
func NewSerializationError(err error) *PurchaseError {
	return &PurchaseError{
		Kind:    PurchaseSerialization,
		Message: fmt.Sprintf("Error converting vehicles to JSON: %v", err),
		Err:     err,
	}
}

// NewPersistenceError создает ошибку хранилища; clientInput - результат классификации статуса
func NewPersistenceError(message string, clientInput bool, err error) *PurchaseError {
	return &PurchaseError{
		Kind:        PurchasePersistence,
		Message:     message,
		ClientInput: clientInput,
		Err:         err,
	}
}

// NewUpstreamError создает ошибку недоступности сервиса пользователей
func NewUpstreamError(userID int64, err error) *PurchaseError {
	return &PurchaseError{
		Kind:    PurchaseUpstreamUnavailable,
		Message: "Failed to fetch user data",
		UserID:  userID,
		Err:     err,
	}
}

// AsPurchaseError извлекает *PurchaseError из цепочки ошибок
func AsPurchaseError(err error) (*PurchaseError, bool) {
	var pe *PurchaseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
