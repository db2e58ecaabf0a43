package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frontandrew/sales/internal/delivery/http/middleware"
	"github.com/frontandrew/sales/internal/pkg/jwt"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func newRouterWith(sales *MockSaleService, tokens middleware.TokenValidator, db Pinger, authEnabled bool) http.Handler {
	log := logger.NewNoop()
	v := validator.New()

	return NewRouter(
		NewSaleHandler(sales, v, log),
		NewSaleDetailHandler(new(MockSaleDetailService), v, log),
		NewPurchaseHandler(new(MockPurchaseService), v, log),
		tokens,
		db,
		testConfig(authEnabled),
		log,
	).Setup()
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
	}{
		{"база доступна", stubPinger{}, http.StatusOK},
		{"база недоступна", stubPinger{err: errors.New("down")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newRouterWith(new(MockSaleService), nil, tt.db, false)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRouter_AuthOnMutatingRoutes(t *testing.T) {
	tokens := jwt.NewTokenService("test-secret", "")
	token, _, err := tokens.GenerateToken(1, "admin", time.Hour)
	require.NoError(t, err)

	sales := new(MockSaleService)
	sales.On("DeleteSale", mock.Anything, int64(5)).Return(true, nil)
	sales.On("ListSales", mock.Anything).Return(nil, nil)

	handler := newRouterWith(sales, tokens, nil, true)

	t.Run("удаление без токена", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sales/delete/5", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("покупка без токена", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/addsales", strings.NewReader(purchaseBody)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("удаление с токеном", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/sales/delete/5", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("чтение без токена", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/getall", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_UnknownRoute(t *testing.T) {
	handler := newRouterWith(new(MockSaleService), nil, nil, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AuthEnabledWithoutValidator(t *testing.T) {
	sales := new(MockSaleService)
	sales.On("ListSales", mock.Anything).Return(nil, nil)

	handler := newRouterWith(sales, nil, nil, true)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sales/delete/5", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/sales-details/add", strings.NewReader(`{"saleId":1,"vehicleId":3}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/getall", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	sales.AssertNotCalled(t, "DeleteSale", mock.Anything, mock.Anything)
}
