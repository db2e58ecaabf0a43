package purchase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserDirectory - мок сервиса пользователей
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPurchaseStore - мок атомарной вставки продажи
type MockPurchaseStore struct {
	mock.Mock
}

func (m *MockPurchaseStore) InsertSaleRecords(ctx context.Context, userID int64, purchaseRef uuid.UUID, vehiclesJSON []byte) (*domain.StoreStatus, error) {
	args := m.Called(ctx, userID, purchaseRef, vehiclesJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreStatus), args.Error(1)
}

var fixedRef = uuid.MustParse("7f1c0a52-3b7e-4c1a-9d55-2f4b8e0a6c11")

func newTestService(users *MockUserDirectory, store *MockPurchaseStore) *Service {
	svc := NewService(users, store, logger.NewNoop(), time.Second)
	svc.newRef = func() uuid.UUID { return fixedRef }
	return svc
}

func sampleRequest() *Request {
	return &Request{
		UserID: 7,
		Vehicles: []domain.VehiclePurchaseLine{
			{VehicleID: 3, Count: 2},
			{VehicleID: 5, Count: 1},
		},
	}
}

func TestService_SubmitPurchase_Success(t *testing.T) {
	users := new(MockUserDirectory)
	store := new(MockPurchaseStore)
	svc := newTestService(users, store)

	users.On("GetUser", mock.Anything, int64(7)).Return(&domain.User{UserID: 7}, nil)
	store.On("InsertSaleRecords", mock.Anything, int64(7), fixedRef,
		[]byte(`[{"vehicleId":3,"count":2},{"vehicleId":5,"count":1}]`),
	).Return(&domain.StoreStatus{Code: domain.StoreStatusOK, Message: "success"}, nil)

	req := sampleRequest()
	result, err := svc.SubmitPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "Sales processed successfully", result.Message)
	assert.Equal(t, req, result.SaleDetails)
	assert.Equal(t, fixedRef, result.PurchaseRef)
	users.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestService_SubmitPurchase_UserNotFound(t *testing.T) {
	users := new(MockUserDirectory)
	store := new(MockPurchaseStore)
	svc := newTestService(users, store)

	users.On("GetUser", mock.Anything, int64(7)).Return(nil, domain.ErrUserNotFound)

	_, err := svc.SubmitPurchase(context.Background(), sampleRequest())

	pe, ok := domain.AsPurchaseError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PurchaseUserNotFound, pe.Kind)
	assert.Equal(t, "User with ID 7 not found", pe.Message)
	assert.True(t, pe.ClientFault())
	store.AssertNotCalled(t, "InsertSaleRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SubmitPurchase_UserServiceDown(t *testing.T) {
	users := new(MockUserDirectory)
	store := new(MockPurchaseStore)
	svc := newTestService(users, store)

	users.On("GetUser", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	_, err := svc.SubmitPurchase(context.Background(), sampleRequest())

	pe, ok := domain.AsPurchaseError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PurchaseUpstreamUnavailable, pe.Kind)
	assert.False(t, pe.ClientFault())
	assert.True(t, errors.Is(err, domain.ErrUserServiceUnavailable))
	store.AssertNotCalled(t, "InsertSaleRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SubmitPurchase_LookupIsBounded(t *testing.T) {
	users := new(MockUserDirectory)
	store := new(MockPurchaseStore)
	svc := NewService(users, store, logger.NewNoop(), 30*time.Millisecond)

	users.On("GetUser", mock.Anything, int64(7)).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(nil, context.DeadlineExceeded)

	start := time.Now()
	_, err := svc.SubmitPurchase(context.Background(), sampleRequest())

	pe, ok := domain.AsPurchaseError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PurchaseUpstreamUnavailable, pe.Kind)
	assert.Less(t, time.Since(start), time.Second)
}

func TestService_SubmitPurchase_StoreStatuses(t *testing.T) {
	tests := []struct {
		name       string
		status     *domain.StoreStatus
		wantClient bool
		wantMsg    string
	}{
		{
			name:       "нехватка на складе",
			status:     &domain.StoreStatus{Code: domain.StoreStatusInsufficientInventory, Message: "Insufficient inventory for vehicle ID 3: requested 2, available 1"},
			wantClient: true,
			wantMsg:    "Insufficient inventory for vehicle ID 3: requested 2, available 1",
		},
		{
			name:       "неизвестный автомобиль без кода",
			status:     &domain.StoreStatus{Message: "Vehicle with ID 99 not found"},
			wantClient: true,
			wantMsg:    "Vehicle with ID 99 not found",
		},
		{
			name:    "сбой базы",
			status:  &domain.StoreStatus{Code: domain.StoreStatusError, Message: "deadlock detected"},
			wantMsg: "deadlock detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserDirectory)
			store := new(MockPurchaseStore)
			svc := newTestService(users, store)

			users.On("GetUser", mock.Anything, int64(7)).Return(&domain.User{UserID: 7}, nil)
			store.On("InsertSaleRecords", mock.Anything, int64(7), fixedRef, mock.Anything).Return(tt.status, nil)

			_, err := svc.SubmitPurchase(context.Background(), sampleRequest())

			pe, ok := domain.AsPurchaseError(err)
			require.True(t, ok)
			assert.Equal(t, domain.PurchasePersistence, pe.Kind)
			assert.Equal(t, tt.wantClient, pe.ClientFault())
			assert.Equal(t, tt.wantMsg, pe.Message)
		})
	}
}

func TestService_SubmitPurchase_StoreCallFails(t *testing.T) {
	users := new(MockUserDirectory)
	store := new(MockPurchaseStore)
	svc := newTestService(users, store)

	callErr := errors.New("conn closed")
	users.On("GetUser", mock.Anything, int64(7)).Return(&domain.User{UserID: 7}, nil)
	store.On("InsertSaleRecords", mock.Anything, int64(7), fixedRef, mock.Anything).Return(nil, callErr)

	_, err := svc.SubmitPurchase(context.Background(), sampleRequest())

	pe, ok := domain.AsPurchaseError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PurchasePersistence, pe.Kind)
	assert.False(t, pe.ClientFault())
	assert.True(t, errors.Is(err, callErr))
}

func TestNewService_DefaultTimeout(t *testing.T) {
	svc := NewService(new(MockUserDirectory), new(MockPurchaseStore), logger.NewNoop(), 0)
	assert.Equal(t, DefaultUserLookupTimeout, svc.lookupTimeout)
}
