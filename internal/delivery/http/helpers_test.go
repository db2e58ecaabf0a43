package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/sales/internal/domain"
	"github.com/frontandrew/sales/internal/pkg/config"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/pkg/validator"
	"github.com/frontandrew/sales/internal/usecase/purchase"
	"github.com/frontandrew/sales/internal/usecase/sale"
	"github.com/frontandrew/sales/internal/usecase/saledetail"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleService - мок сервиса продаж
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) ListSales(ctx context.Context) ([]*sale.DTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sale.DTO), args.Error(1)
}

func (m *MockSaleService) GetSale(ctx context.Context, id int64) (*sale.DTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.DTO), args.Error(1)
}

func (m *MockSaleService) UpdateSale(ctx context.Context, id int64, req *sale.UpdateSaleRequest) (*sale.DTO, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.DTO), args.Error(1)
}

func (m *MockSaleService) DeleteSale(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSaleService) ListSalesByUser(ctx context.Context, userID int64) ([]*sale.DTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sale.DTO), args.Error(1)
}

// MockPurchaseService - мок процесса покупки
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) SubmitPurchase(ctx context.Context, req *purchase.Request) (*purchase.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Result), args.Error(1)
}

// MockSaleDetailService - мок сервиса строк продаж
type MockSaleDetailService struct {
	mock.Mock
}

func (m *MockSaleDetailService) CreateSaleDetail(ctx context.Context, req *saledetail.Request) (*domain.SaleDetail, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleDetailService) ListSaleDetails(ctx context.Context) ([]*domain.SaleDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleDetailService) GetSaleDetail(ctx context.Context, id int64) (*domain.SaleDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleDetailService) GetSaleDetailsBySale(ctx context.Context, saleID int64) ([]*domain.SaleDetail, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleDetailService) UpdateSaleDetail(ctx context.Context, id int64, req *saledetail.Request) (*domain.SaleDetail, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleDetail), args.Error(1)
}

func (m *MockSaleDetailService) DeleteSaleDetail(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// testConfig возвращает конфигурацию для тестового роутера
func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{Enabled: authEnabled, SecretKey: "test-secret"},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}
}

// testServer собирает роутер поверх моков
type testServer struct {
	sales     *MockSaleService
	details   *MockSaleDetailService
	purchases *MockPurchaseService
	handler   http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.NewNoop()
	v := validator.New()

	ts := &testServer{
		sales:     new(MockSaleService),
		details:   new(MockSaleDetailService),
		purchases: new(MockPurchaseService),
	}

	router := NewRouter(
		NewSaleHandler(ts.sales, v, log),
		NewSaleDetailHandler(ts.details, v, log),
		NewPurchaseHandler(ts.purchases, v, log),
		nil,
		nil,
		testConfig(false),
		log,
	)
	ts.handler = router.Setup()
	return ts
}

// do выполняет запрос; body сериализуется в JSON, строка отправляется как есть
func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody разбирает JSON ответа в map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
