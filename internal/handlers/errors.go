package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"todoBackend/internal/logger"
	"todoBackend/internal/store"
)

// Коды ошибок, которые рождаются в самом HTTP-слое. Остальные приходят
// из хранилища вместе с StoreError.
const codeBadRequest = "BAD_REQUEST"
const codeSchemaValidation = "SCHEMA_VALIDATION_ERROR"
const codeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
const codeInternal = "INTERNAL_ERROR"

// handleStoreError переводит StoreError в HTTP-ответ. Возвращает false,
// если ошибка не бизнесовая — тогда вызывающий код отвечает сам.
func handleStoreError(w http.ResponseWriter, err error) bool {
	var storeErr *store.StoreError
	if !errors.As(err, &storeErr) {
		return false
	}

	statusCode := mapStoreErrorToHTTP(storeErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", storeErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode, errorResponse{
		Error:   storeErr.Code,
		Message: storeErr.Message,
		Details: storeErr.Details,
	})
	return true
}

func mapStoreErrorToHTTP(code string) int {
	switch code {
	case store.CodeNotFound:
		return http.StatusNotFound
	case store.CodeValidation:
		return http.StatusBadRequest
	case store.CodePersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
