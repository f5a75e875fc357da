package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrNotFound запись не найдена (или принадлежит другому пользователю)
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate дубликат записи
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnauthorized пользователь не аутентифицирован
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict операция нарушает ограничение целостности
	ErrConflict = errors.New("conflict")

	// ErrPlantLimitReached достигнут лимит растений для тарифа
	ErrPlantLimitReached = errors.New("plant limit reached")

	// ErrAddressInUse адрес используется растениями
	ErrAddressInUse = errors.New("address in use")

	// ErrUpstream внешний сервис недоступен или вернул ошибку
	ErrUpstream = errors.New("upstream service failure")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)

// NotFoundError представляет ошибку "не найдено" для конкретной сущности
type NotFoundError struct {
	Entity string
	ID     string
}

// Error реализует интерфейс error
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// Is проверяет, является ли ошибка ошибкой типа "не найдено"
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError создает новую ошибку "не найдено"
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateError представляет ошибку дубликата
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

// Error реализует интерфейс error
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Entity, e.Field, e.Value)
}

// Is проверяет, является ли ошибка ошибкой дубликата
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// NewDuplicateError создает новую ошибку дубликата
func NewDuplicateError(entity, field, value string) *DuplicateError {
	return &DuplicateError{Entity: entity, Field: field, Value: value}
}

// ExternalServiceError представляет ошибку внешнего сервиса
type ExternalServiceError struct {
	Service     string
	StatusCode  int
	OriginalErr error
}

// Error реализует интерфейс error
func (e *ExternalServiceError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s service error (status %d): %v", e.Service, e.StatusCode, e.OriginalErr)
	}
	return fmt.Sprintf("%s service error (status %d)", e.Service, e.StatusCode)
}

// Is проверяет, является ли ошибка ошибкой внешнего сервиса
func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrUpstream
}

// Unwrap возвращает оригинальную ошибку
func (e *ExternalServiceError) Unwrap() error {
	return e.OriginalErr
}

// NewExternalServiceError создает новую ошибку внешнего сервиса
func NewExternalServiceError(service string, statusCode int, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, StatusCode: statusCode, OriginalErr: err}
}
