package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды, которые обрабатываются сервисом
const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// ErrSerializationFailure возвращается, когда PostgreSQL откатил транзакцию из-за конкурентного доступа
var ErrSerializationFailure = errors.New("pgerrors: serialization failure")

// Code возвращает SQLSTATE код ошибки PostgreSQL или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation нарушение UNIQUE ограничения
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsExclusionViolation нарушение EXCLUDE ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsSerializationFailure конфликт сериализуемой транзакции или deadlock
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
