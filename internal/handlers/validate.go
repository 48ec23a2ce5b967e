package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"todoBackend/internal/logger"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeBody читает тело запроса, проверяет его JSON-схемой и декодирует
// в dst. При false ответ об ошибке уже записан: синтаксически битый JSON
// даёт 400, нарушение схемы — 422.
func decodeBody(w http.ResponseWriter, r *http.Request, validateDoc func(any) error, dst any) bool {
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {

		logger.Warn("HTTP: не удалось прочитать тело запроса",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "не удалось прочитать тело запроса")
		return false
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное тело запроса: "+err.Error())
		return false
	}

	if err := validateDoc(doc); err != nil {

		logger.Warn("HTTP: тело запроса не прошло схему",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, codeSchemaValidation, "тело запроса не соответствует схеме: "+err.Error())
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {

		logger.Warn("HTTP: ошибка декодирования запроса",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное тело запроса: "+err.Error())
		return false
	}

	return true
}
