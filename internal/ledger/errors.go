package ledger

import "errors"

// Ошибки валидации. Возвращаются до любого изменения состояния.
var (
	ErrUnknownCustomer        = errors.New("ledger: unknown customer")
	ErrUnknownPlan            = errors.New("ledger: unknown plan")
	ErrUnknownMenuItem        = errors.New("ledger: unknown menu item")
	ErrInvalidAmount          = errors.New("ledger: amount must be positive")
	ErrInvalidDuration        = errors.New("ledger: duration must be positive")
	ErrInvalidQuantity        = errors.New("ledger: quantity must be positive")
	ErrInvalidPortion         = errors.New("ledger: portion must be half or full")
	ErrInvalidTransactionType = errors.New("ledger: only INCOME and EXPENSE can be logged manually")
	ErrEmptyDescription       = errors.New("ledger: description is required")
	ErrInvalidName            = errors.New("ledger: name must not contain control characters")
)

// ErrPersistenceFailed означает, что изменение применено в памяти, но не сохранено.
var ErrPersistenceFailed = errors.New("ledger: persistence failed")
