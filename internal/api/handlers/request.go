package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// MsgValidationFailed сообщение ответа 422
const MsgValidationFailed = "ошибка валидации данных"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем имена полей из json тегов
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(dst)
}

// Validate проверяет структуру по тегам validate.
// Возвращает ошибки по полям или nil, если данные корректны.
func Validate(v interface{}) map[string][]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"_": {err.Error()}}
	}

	result := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		result[fe.Field()] = append(result[fe.Field()], fieldMessage(fe))
	}
	return result
}

// FieldError ошибка одного поля в формате Validate
func FieldError(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "поле обязательно"
	case "email":
		return "некорректный email"
	case "min":
		return fmt.Sprintf("минимальное значение: %s", fe.Param())
	case "max":
		return fmt.Sprintf("максимальное значение: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("значение должно быть больше %s", fe.Param())
	case "gte":
		return fmt.Sprintf("значение должно быть не меньше %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("допустимые значения: %s", fe.Param())
	case "len":
		return fmt.Sprintf("длина должна быть %s", fe.Param())
	default:
		return fmt.Sprintf("некорректное значение (%s)", fe.Tag())
	}
}

// PathID извлекает положительный ID из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}

// PageFromQuery читает номер страницы из параметра page
func PageFromQuery(r *http.Request) domain.Page {
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return domain.NewPage(number, domain.DefaultPageSize)
}

// SearchFromQuery читает строку поиска из параметра search
func SearchFromQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}
