package respond

import (
	"encoding/json"
	"net/http"
)

// Закрытый набор категорий ошибок - тесты и клиенты различают
// отказы по kind, не разбирая текст сообщения.
const (
	KindUnauthenticated = "unauthenticated"
	KindNotFound        = "not_found"
	KindValidation      = "validation"
	KindInternal        = "internal"
)

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, r *http.Request, code int, kind, message string) {
	JSON(w, r, code, map[string]ErrorBody{"error": {Kind: kind, Message: message}})
}

// FieldError - ошибка валидации с привязкой к конкретному полю.
func FieldError(w http.ResponseWriter, r *http.Request, code int, kind, message, field string) {
	JSON(w, r, code, map[string]ErrorBody{"error": {Kind: kind, Message: message, Field: field}})
}
