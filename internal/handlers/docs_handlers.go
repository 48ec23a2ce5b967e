package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"todoBackend/internal/docs"
	"todoBackend/internal/logger"
)

// Страница Swagger UI: статический шаблон поверх CDN-сборки swagger-ui-dist,
// сам интерфейс читает документ с /docs/openapi.json.
const swaggerPage = `<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="utf-8">
  <title>Todo API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.json",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>
`

type DocsHandler struct {
	specJSON []byte
}

// NewDocsHandler сериализует OpenAPI-документ один раз: маршруты и схемы
// фиксированы на время жизни процесса, пересобирать их на каждый запрос незачем.
func NewDocsHandler() (*DocsHandler, error) {
	doc, err := docs.Document()
	if err != nil {
		return nil, fmt.Errorf("сборка OpenAPI документа: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация OpenAPI документа: %w", err)
	}

	return &DocsHandler{specJSON: raw}, nil
}

func (h *DocsHandler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {

	logger.HttpRequestInfo(r, "HTTP: OpenAPI документ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.specJSON)
}

func (h *DocsHandler) SwaggerUI(w http.ResponseWriter, r *http.Request) {

	logger.HttpRequestInfo(r, "HTTP: Swagger UI")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(swaggerPage))
}
