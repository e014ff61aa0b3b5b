// errors переводит ошибки сервисного слоя в HTTP-ответы вида
// {"error": {"code", "message", "request_id"}}.
//
// Наружу уходят только стабильный code и короткое message; причины
// (драйвер Mongo, внешний API) остаются в логах сервиса.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-pokedex/internal/service"
)

// StatusClientClosedRequest - клиент ушёл, не дождавшись ответа (nginx 499).
const StatusClientClosedRequest = 499

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// rule сопоставляет сервисную ошибку с ответом; первое совпадение побеждает.
type rule struct {
	target  error
	status  int
	code    string
	message string
}

var rules = []rule{
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
	{context.Canceled, StatusClientClosedRequest, "canceled", "canceled"},
	{service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "invalid argument"},
	{service.ErrNotFound, http.StatusNotFound, "not_found", "not found"},
	{service.ErrConflict, http.StatusConflict, "already_exists", "already exists"},
	{service.ErrFetchFailed, http.StatusBadGateway, "fetch_failed", "external api request failed"},
	{service.ErrEmptyListing, http.StatusBadGateway, "empty_listing", "external listing has no valid entries"},
	{service.ErrListingTruncated, http.StatusBadGateway, "listing_truncated", "external listing exceeds page limit"},
}

var internal = APIError{Code: "internal", Message: "internal error"}

// ToHTTP возвращает статус и тело ответа для err.
// nil и всё неизвестное дают 500/internal: "200 с ошибкой" хуже явного сбоя.
// Конфликт с известным ключом называет его в message.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: internal}
	}

	for _, rl := range rules {
		if !stderrors.Is(err, rl.target) {
			continue
		}

		msg := rl.message

		var conflict *service.ConflictError
		if rl.target == service.ErrConflict && stderrors.As(err, &conflict) {
			msg = fmt.Sprintf("already exists: no=%d name=%q", conflict.No, conflict.Name)
		}

		return rl.status, ErrorResponse{Error: APIError{Code: rl.code, Message: msg}}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: internal}
}

// WriteError пишет JSON-ответ об ошибке с request_id из X-Request-Id.
//
// Сервис сводит сбой хранилища по истёкшему контексту к ErrInternal;
// если контекст запроса уже завершён, отвечаем по нему (504 или 499).
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if ctxErr := r.Context().Err(); ctxErr != nil && stderrors.Is(err, service.ErrInternal) {
		err = ctxErr
	}

	status, body := ToHTTP(err)
	body.Error.RequestID = r.Header.Get("X-Request-Id")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
