package domain

import "errors"

// Категории ошибок. Ошибки пакетов usecase/service оборачивают одну из них
var (
	// ErrValidation некорректные или вне допустимого диапазона входные данные
	ErrValidation = errors.New("validation error")

	// ErrConflict слот или барбер стали недоступны между показом и записью
	ErrConflict = errors.New("conflict")

	// ErrForbidden у пользователя нет прав на запись
	ErrForbidden = errors.New("forbidden")

	// ErrPolicyViolation действие нарушает бизнес-правило
	ErrPolicyViolation = errors.New("policy violation")

	// ErrDuplicate запись уже существует
	ErrDuplicate = errors.New("duplicate")

	// ErrNotFound объект не найден
	ErrNotFound = errors.New("not found")
)
