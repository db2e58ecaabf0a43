package domain

import "math"

// MaxVehicleID - верхняя граница ID автомобиля и количества (INTEGER в таблице vehicles)
const MaxVehicleID = math.MaxInt32

// VehiclePurchaseLine - одна позиция заказа: автомобиль и запрошенное количество
type VehiclePurchaseLine struct {
	VehicleID int64 `json:"vehicleId" validate:"required,gt=0,lte=2147483647"`
	Count     int   `json:"count" validate:"required,gt=0,lte=2147483647"`
}

// Коды статуса, которые возвращает процедура insert_sale_records
const (
	StoreStatusOK                    = "OK"
	StoreStatusUserNotFound          = "USER_NOT_FOUND"
	StoreStatusVehicleNotFound       = "VEHICLE_NOT_FOUND"
	StoreStatusInsufficientInventory = "INSUFFICIENT_INVENTORY"
	StoreStatusInvalidInput          = "INVALID_INPUT"
	StoreStatusError                 = "ERROR"
)

// StoreStatus - результат атомарной вставки продажи.
// Code может быть пустым, если хранилище возвращает только текст.
type StoreStatus struct {
	Code    string
	Message string
}
