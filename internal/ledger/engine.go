// Package ledger реализует движок учёта: операции записи клиентов, обедов,
// отпусков, денежных проводок и настроек, а также вычисление напоминаний.
//
// Все операции чистые: принимают models.State и возвращают новый models.State,
// не изменяя переданный. Время и генерация идентификаторов передаются явно
// через опции, чтобы тесты могли зафиксировать часы.
package ledger

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/messmate/internal/models"
)

const (
	// NoPhone подставляется, если телефон клиента не указан.
	NoPhone = "No Phone"

	categoryMealPlan  = "Meal Plan"
	categoryMealExtra = "Meal Extra"
)

// Engine выполняет операции над состоянием.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// Option настраивает Engine.
type Option func(*Engine)

// WithClock задаёт источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator задаёт генератор идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// New создаёт Engine. По умолчанию используются time.Now и UUID v4.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now возвращает текущее время по часам движка.
func (e *Engine) Now() time.Time {
	return e.now()
}

// EnrollRequest описывает данные для записи нового клиента.
type EnrollRequest struct {
	Name   string
	Phone  string
	PlanID string
}

// Enroll записывает клиента на план и добавляет проводку SUBSCRIPTION на стоимость плана.
// Пустое имя ничего не меняет: возвращается исходное состояние и nil.
// Имя с управляющими символами отклоняется с ErrInvalidName.
func (e *Engine) Enroll(st models.State, req EnrollRequest) (models.State, *models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return st, nil, nil
	}
	// Имя попадает в заголовки писем и в CSV.
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return st, nil, ErrInvalidName
	}
	plan, ok := st.FindPlan(req.PlanID)
	if !ok {
		return st, nil, fmt.Errorf("%w: %s", ErrUnknownPlan, req.PlanID)
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = NoPhone
	}

	now := e.now()
	customer := models.Customer{
		ID:             e.newID(),
		Name:           name,
		Phone:          phone,
		PlanID:         plan.ID,
		StartDate:      now,
		ExpiryDate:     now.AddDate(0, 0, plan.ValidityDays),
		MealsRemaining: plan.TotalMeals,
		Balance:        decimal.Zero,
		IsActive:       true,
	}
	tx := models.Transaction{
		ID:          e.newID(),
		Type:        models.TransactionSubscription,
		Amount:      plan.Cost,
		Date:        now,
		Description: "New Plan: " + name,
		CustomerID:  customer.ID,
	}

	st.Customers = append(slices.Clip(st.Customers), customer)
	st.Transactions = append(slices.Clip(st.Transactions), tx)
	return st, &customer, nil
}

// MealRequest описывает отметку обеда клиента.
type MealRequest struct {
	CustomerID string
	Item       models.MenuItem
	Portion    models.Portion
	Quantity   int
}

// MealResult описывает, как обед распределился между планом и оплатой.
type MealResult struct {
	Customer      models.Customer      `json:"customer"`
	Covered       int                  `json:"covered"`
	PayableUnits  int                  `json:"payableUnits"`
	PayableAmount decimal.Decimal      `json:"payableAmount"`
	Transactions  []models.Transaction `json:"transactions"`
}

// RecordMeal списывает обеды сначала из плана, остаток начисляет клиенту в долг.
//
// Списанные из плана обеды фиксируются проводкой USAGE с нулевой суммой,
// оплачиваемая часть проводкой INCOME. Остаток обедов не уходит в минус.
func (e *Engine) RecordMeal(st models.State, req MealRequest) (models.State, MealResult, error) {
	if req.Quantity <= 0 {
		return st, MealResult{}, ErrInvalidQuantity
	}
	if !req.Portion.Valid() {
		return st, MealResult{}, ErrInvalidPortion
	}
	idx := st.FindCustomer(req.CustomerID)
	if idx < 0 {
		return st, MealResult{}, fmt.Errorf("%w: %s", ErrUnknownCustomer, req.CustomerID)
	}

	customer := st.Customers[idx]
	covered := min(customer.MealsRemaining, req.Quantity)
	if covered < 0 {
		covered = 0
	}
	payableUnits := req.Quantity - covered
	payableAmount := req.Item.UnitPrice(req.Portion).Mul(decimal.NewFromInt(int64(payableUnits)))

	customer.MealsRemaining -= covered
	customer.Balance = customer.Balance.Add(payableAmount)

	now := e.now()
	desc := fmt.Sprintf("%s (%s) x%d", req.Item.Name, req.Portion, req.Quantity)
	var txs []models.Transaction
	if covered > 0 {
		txs = append(txs, models.Transaction{
			ID:          e.newID(),
			Type:        models.TransactionUsage,
			Amount:      decimal.Zero,
			Date:        now,
			Description: desc + " (Plan)",
			Category:    categoryMealPlan,
			CustomerID:  customer.ID,
		})
	}
	if payableAmount.IsPositive() {
		txs = append(txs, models.Transaction{
			ID:          e.newID(),
			Type:        models.TransactionIncome,
			Amount:      payableAmount,
			Date:        now,
			Description: desc + " (Extra)",
			Category:    categoryMealExtra,
			CustomerID:  customer.ID,
		})
	}

	st.Customers = slices.Clone(st.Customers)
	st.Customers[idx] = customer
	st.Transactions = append(slices.Clip(st.Transactions), txs...)

	return st, MealResult{
		Customer:      customer,
		Covered:       covered,
		PayableUnits:  payableUnits,
		PayableAmount: payableAmount,
		Transactions:  txs,
	}, nil
}

// AddBreak продлевает срок действия плана на days календарных дней.
// Денежных проводок не создаёт.
func (e *Engine) AddBreak(st models.State, customerID string, days int) (models.State, *models.Customer, error) {
	if days <= 0 {
		return st, nil, ErrInvalidDuration
	}
	idx := st.FindCustomer(customerID)
	if idx < 0 {
		return st, nil, fmt.Errorf("%w: %s", ErrUnknownCustomer, customerID)
	}

	customer := st.Customers[idx]
	customer.ExpiryDate = customer.ExpiryDate.AddDate(0, 0, days)
	customer.TotalBreakDays += days

	st.Customers = slices.Clone(st.Customers)
	st.Customers[idx] = customer
	return st, &customer, nil
}

// TransactionRequest описывает ручную денежную проводку.
type TransactionRequest struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Description string
	Category    string
}

// AddTransaction добавляет приход или расход. Клиентов не затрагивает.
func (e *Engine) AddTransaction(st models.State, req TransactionRequest) (models.State, models.Transaction, error) {
	if req.Type != models.TransactionIncome && req.Type != models.TransactionExpense {
		return st, models.Transaction{}, fmt.Errorf("%w: %s", ErrInvalidTransactionType, req.Type)
	}
	if !req.Amount.IsPositive() {
		return st, models.Transaction{}, ErrInvalidAmount
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return st, models.Transaction{}, ErrEmptyDescription
	}

	tx := models.Transaction{
		ID:          e.newID(),
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        e.now(),
		Description: desc,
	}
	if req.Type == models.TransactionExpense {
		tx.Category = strings.TrimSpace(req.Category)
	}

	st.Transactions = append(slices.Clip(st.Transactions), tx)
	return st, tx, nil
}

// SettingsPatch описывает частичное обновление настроек; nil означает «не менять».
type SettingsPatch struct {
	SubscriptionDays *int
	MealThreshold    *int
	BalanceThreshold *decimal.Decimal
}

// UpdateSettings применяет патч и ограничивает значения снизу.
func (e *Engine) UpdateSettings(st models.State, patch SettingsPatch) (models.State, models.Settings) {
	s := st.Settings
	if patch.SubscriptionDays != nil {
		s.SubscriptionDays = *patch.SubscriptionDays
	}
	if patch.MealThreshold != nil {
		s.MealThreshold = *patch.MealThreshold
	}
	if patch.BalanceThreshold != nil {
		s.BalanceThreshold = *patch.BalanceThreshold
	}

	s.SubscriptionDays = max(1, s.SubscriptionDays)
	s.MealThreshold = max(0, s.MealThreshold)
	if s.BalanceThreshold.IsNegative() {
		s.BalanceThreshold = decimal.Zero
	}

	st.Settings = s
	return st, s
}

// SignIn запоминает вошедшего пользователя.
func (e *Engine) SignIn(st models.State, user models.User) models.State {
	st.CurrentUser = &user
	return st
}

// SignOut сбрасывает текущего пользователя.
func (e *Engine) SignOut(st models.State) models.State {
	st.CurrentUser = nil
	return st
}

// ToggleDarkMode переключает тему оформления.
func (e *Engine) ToggleDarkMode(st models.State) models.State {
	st.DarkMode = !st.DarkMode
	return st
}
