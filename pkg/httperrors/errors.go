// Package httperrors переводит доменные ошибки в HTTP-статус и обезличенное тело ответа.
// Детали ошибки клиенту не уходят никогда; их логирует вызывающий обработчик.
package httperrors

import (
	"errors"
	"io"
	"net/http"

	"github.com/sir_venger/filedrop/internal/models"
)

// Тексты ответов, которые видит клиент.
const (
	BodyNotFound = "File not found"
	BodyBadReq   = "Bad Request"
	BodyTooLarge = "Request Entity Too Large"
	BodyInternal = "Internal Server Error"
)

// Status возвращает HTTP-статус и тело ответа для ошибки.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, BodyNotFound
	case errors.Is(err, models.ErrInvalidName), errors.Is(err, models.ErrMalformed):
		return http.StatusBadRequest, BodyBadReq
	case errors.Is(err, models.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, BodyTooLarge
	default:
		return http.StatusInternalServerError, BodyInternal
	}
}

// Write пишет статус и обезличенное plain-text тело.
func Write(w http.ResponseWriter, err error) {
	code, body := Status(err)
	WriteText(w, code, body)
}

// WriteText пишет plain-text ответ без завершающего перевода строки.
func WriteText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}
