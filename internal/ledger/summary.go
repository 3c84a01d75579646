package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/messmate/internal/lib/month"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// ExpenseCategories — категории расходов, предлагаемые при вводе.
var ExpenseCategories = []string{
	"Vegetables",
	"Rice & Wheat",
	"Meat & Dairy",
	"Oil & Spices",
	"Gas Cylinder",
	"Rent/Electricity",
	"Others",
}

// Totals — суммы по видам проводок.
type Totals struct {
	Income       decimal.Decimal `json:"income"`
	Subscription decimal.Decimal `json:"subscription"`
	Expense      decimal.Decimal `json:"expense"`
	UsageCount   int             `json:"usageCount"`
}

// Revenue возвращает все поступления: разовые приходы и покупки планов.
func (t Totals) Revenue() decimal.Decimal {
	return t.Income.Add(t.Subscription)
}

// Net возвращает поступления за вычетом расходов.
func (t Totals) Net() decimal.Decimal {
	return t.Revenue().Sub(t.Expense)
}

func (t *Totals) add(tx models.Transaction) {
	switch tx.Type {
	case models.TransactionIncome:
		t.Income = t.Income.Add(tx.Amount)
	case models.TransactionSubscription:
		t.Subscription = t.Subscription.Add(tx.Amount)
	case models.TransactionExpense:
		t.Expense = t.Expense.Add(tx.Amount)
	case models.TransactionUsage:
		t.UsageCount++
	default:
		// неизвестные виды отсекаются при загрузке документа
		panic(fmt.Sprintf("ledger: unhandled transaction type %q", tx.Type))
	}
}

// Sum подсчитывает суммы по списку проводок. USAGE в денежные суммы не входит.
func Sum(txs []models.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Subscription: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range txs {
		t.add(tx)
	}
	return t
}

// Summary — показатели для главного экрана.
type Summary struct {
	ActiveCustomers  int             `json:"activeCustomers"`
	IncomeThisMonth  decimal.Decimal `json:"incomeThisMonth"`
	ExpenseThisMonth decimal.Decimal `json:"expenseThisMonth"`
}

// Summarize считает активных клиентов и оборот за текущий календарный месяц.
func Summarize(st models.State, now time.Time) Summary {
	active := 0
	for _, c := range st.Customers {
		if c.IsActive && !c.ExpiryDate.Before(now) {
			active++
		}
	}

	var current []models.Transaction
	for _, tx := range st.Transactions {
		if month.Contains(now, tx.Date) {
			current = append(current, tx)
		}
	}
	totals := Sum(current)

	return Summary{
		ActiveCustomers:  active,
		IncomeThisMonth:  totals.Revenue(),
		ExpenseThisMonth: totals.Expense,
	}
}

// SearchCustomers ищет клиентов по подстроке имени без учёта регистра или по подстроке телефона.
func SearchCustomers(st models.State, query string) []models.Customer {
	q := strings.TrimSpace(query)
	if q == "" {
		return slices.Clone(st.Customers)
	}
	lower := strings.ToLower(q)
	found := make([]models.Customer, 0)
	for _, c := range st.Customers {
		if strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(c.Phone, q) {
			found = append(found, c)
		}
	}
	return found
}

// CashFeed возвращает денежные проводки (без USAGE) от новых к старым.
// Порядок в самом журнале не меняется.
func CashFeed(st models.State) []models.Transaction {
	feed := make([]models.Transaction, 0, len(st.Transactions))
	for i := len(st.Transactions) - 1; i >= 0; i-- {
		if st.Transactions[i].Type != models.TransactionUsage {
			feed = append(feed, st.Transactions[i])
		}
	}
	return feed
}

// CustomerTransactions возвращает проводки клиента в порядке добавления.
func CustomerTransactions(st models.State, customerID string) []models.Transaction {
	txs := make([]models.Transaction, 0)
	for _, tx := range st.Transactions {
		if tx.CustomerID == customerID {
			txs = append(txs, tx)
		}
	}
	return txs
}
