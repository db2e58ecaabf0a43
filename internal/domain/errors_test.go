package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseError_ClientFault(t *testing.T) {
	tests := []struct {
		name   string
		err    *PurchaseError
		client bool
	}{
		{"пользователь не найден", NewUserNotFoundError(7), true},
		{"ошибка сериализации", NewSerializationError(errors.New("bad")), false},
		{"ошибка хранилища", NewPersistenceError("deadlock detected", false, nil), false},
		{"нехватка на складе", NewPersistenceError("Insufficient inventory for vehicle ID 3", true, nil), true},
		{"сервис пользователей недоступен", NewUpstreamError(7, errors.New("timeout")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.client, tt.err.ClientFault())
		})
	}
}

func TestNewUserNotFoundError(t *testing.T) {
	err := NewUserNotFoundError(7)

	assert.Equal(t, "User with ID 7 not found", err.Error())
	assert.Equal(t, int64(7), err.UserID)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestAsPurchaseError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewUpstreamError(3, ErrUserServiceUnavailable))

	pe, ok := AsPurchaseError(wrapped)
	require.True(t, ok)
	assert.Equal(t, PurchaseUpstreamUnavailable, pe.Kind)
	assert.True(t, errors.Is(wrapped, ErrUserServiceUnavailable))

	_, ok = AsPurchaseError(errors.New("plain"))
	assert.False(t, ok)
}
