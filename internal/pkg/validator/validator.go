package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator - обертка над go-playground/validator для проверки входных DTO
type Validator struct {
	v *validator.Validate
}

// New создает валидатор. Имена полей в ошибках берутся из json-тегов.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct проверяет структуру по validate-тегам и возвращает читаемую ошибку
func (val *Validator) Struct(s interface{}) error {
	if err := val.v.Struct(s); err != nil {
		return describe(err)
	}
	return nil
}

// Var проверяет одно значение по тегу
func (val *Validator) Var(field interface{}, tag string) error {
	if err := val.v.Var(field, tag); err != nil {
		return describe(err)
	}
	return nil
}

// describe превращает ValidationErrors в одну строку вида "vehicles[0].count must be greater than 0"
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	if field == "" {
		field = "value"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

// fieldPath отрезает имя корневой структуры: "Request.vehicles[0].count" -> "vehicles[0].count"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
