package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType — вид проводки в журнале.
type TransactionType string

const (
	// TransactionIncome — поступление денег (в том числе оплата обедов сверх плана).
	TransactionIncome TransactionType = "INCOME"
	// TransactionExpense — расход.
	TransactionExpense TransactionType = "EXPENSE"
	// TransactionSubscription — покупка тарифного плана.
	TransactionSubscription TransactionType = "SUBSCRIPTION"
	// TransactionUsage — списание обеда из плана, всегда с нулевой суммой.
	TransactionUsage TransactionType = "USAGE"
)

// TransactionTypes перечисляет все известные виды проводок.
var TransactionTypes = []TransactionType{
	TransactionIncome,
	TransactionExpense,
	TransactionSubscription,
	TransactionUsage,
}

// Validate возвращает ошибку для неизвестного вида проводки.
func (t TransactionType) Validate() error {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionSubscription, TransactionUsage:
		return nil
	default:
		return fmt.Errorf("unknown transaction type %q", string(t))
	}
}

// Transaction — неизменяемая запись журнала. Записи только добавляются.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`   // Только для расходов и служебных проводок
	CustomerID  string          `json:"customerId,omitempty"` // Ссылка на клиента, если есть
}
