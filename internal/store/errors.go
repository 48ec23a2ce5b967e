package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const CodeNotFound = "NOT_FOUND"
const CodeValidation = "VALIDATION_ERROR"
const CodePersistence = "PERSISTENCE_ERROR"

// StoreError — ошибка бизнес-уровня с машинным кодом для HTTP-слоя.
type StoreError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewNotFound(id uuid.UUID) *StoreError {
	return &StoreError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("запись %s не найдена", id),
		Details: map[string]any{
			"id": id.String(),
		},
	}
}

func NewValidationError(field, reason string) *StoreError {
	return &StoreError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewPersistenceError(operation string, err error) *StoreError {
	return &StoreError{
		Code:    CodePersistence,
		Message: "не удалось сохранить данные на диск",
		Details: map[string]any{
			"operation": operation,
		},
		Err: err,
	}
}

func hasCode(err error, code string) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

func IsPersistence(err error) bool {
	return hasCode(err, CodePersistence)
}
