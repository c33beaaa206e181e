package models

import "github.com/pkg/errors"

// Типизированные ошибки ядра процессов, проверяются через errors.Is
var (
	ErrNotFound            = errors.New("запись не найдена")
	ErrInvalidState        = errors.New("операция недоступна в текущем статусе")
	ErrValidation          = errors.New("некорректные данные запроса")
	ErrConcurrencyConflict = errors.New("конфликт одновременного изменения, повторите операцию")
)
