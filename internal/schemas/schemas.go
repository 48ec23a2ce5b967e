package schemas

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed *.schema.json
var files embed.FS

// Схемы запросов компилируются один раз при старте процесса. Они же,
// в сыром виде, попадают в components OpenAPI-документа, так что контракт
// в /docs и фактическая валидация не могут разойтись.
var createSchema = mustCompile("todo_create.schema.json")
var replaceSchema = mustCompile("todo_replace.schema.json")
var updateSchema = mustCompile("todo_update.schema.json")

var componentFiles = []string{
	"todo.schema.json",
	"todo_create.schema.json",
	"todo_replace.schema.json",
	"todo_update.schema.json",
	"pagination_meta.schema.json",
	"error.schema.json",
}

func mustCompile(name string) *jsonschema.Schema {
	raw, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("schemas: чтение %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("schemas: регистрация %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schemas: компиляция %s: %v", name, err))
	}
	return schema
}

// ValidateCreate проверяет тело POST /todos/ против схемы TodoCreate.
// doc — уже распарсенный JSON (результат json.Unmarshal в any).
func ValidateCreate(doc any) error {
	return createSchema.Validate(doc)
}

// ValidateReplace проверяет тело PUT /todos/{id} против схемы TodoReplace.
func ValidateReplace(doc any) error {
	return replaceSchema.Validate(doc)
}

// ValidateUpdate проверяет тело PATCH /todos/{id}. Неизвестные поля схема
// не запрещает: они просто игнорируются, как и отсутствующие.
func ValidateUpdate(doc any) error {
	return updateSchema.Validate(doc)
}

// Components возвращает все схемы в сыром виде для секции components
// OpenAPI-документа. Ключ — title схемы, $schema убирается, потому что
// диалект задаётся на уровне всего документа.
func Components() (map[string]any, error) {
	out := make(map[string]any, len(componentFiles))
	for _, name := range componentFiles {
		raw, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("чтение схемы %s: %w", name, err)
		}

		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("разбор схемы %s: %w", name, err)
		}

		title, ok := doc["title"].(string)
		if !ok || title == "" {
			return nil, fmt.Errorf("схема %s без title", name)
		}
		delete(doc, "$schema")
		out[title] = doc
	}
	return out, nil
}
