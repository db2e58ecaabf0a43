package purchase

import (
	"strings"

	"github.com/frontandrew/sales/internal/domain"
)

// Фрагменты текста, по которым ошибка хранилища считается ошибкой клиента,
// если процедура не вернула код
var clientFaultPhrases = []string{
	"user with id",
	"vehicle with id",
	"insufficient inventory",
}

type storeOutcome struct {
	committed   bool
	clientFault bool
}

// classifyStatus разбирает статус insert_sale_records.
// Решает код. Без кода успех определяется по тексту; для прочих кодов
// текст служит запасным признаком ошибки клиента.
func classifyStatus(status *domain.StoreStatus) storeOutcome {
	if status == nil {
		return storeOutcome{committed: true}
	}

	code := strings.ToUpper(strings.TrimSpace(status.Code))
	message := strings.TrimSpace(status.Message)

	switch code {
	case domain.StoreStatusOK:
		return storeOutcome{committed: true}
	case domain.StoreStatusUserNotFound,
		domain.StoreStatusVehicleNotFound,
		domain.StoreStatusInsufficientInventory,
		domain.StoreStatusInvalidInput:
		return storeOutcome{clientFault: true}
	case "":
		if message == "" || strings.EqualFold(message, "success") {
			return storeOutcome{committed: true}
		}
	}

	lower := strings.ToLower(message)
	for _, phrase := range clientFaultPhrases {
		if strings.Contains(lower, phrase) {
			return storeOutcome{clientFault: true}
		}
	}

	return storeOutcome{}
}
