// Package services содержит сервис учёта: единственного владельца текущего состояния.
// Сервис сериализует изменения, сохраняет документ после каждого из них и
// считает метрики. Вычисления выполняет движок ledger.Engine.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/magabrotheeeer/messmate/internal/export"
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/metrics"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Store загружает и сохраняет документ состояния.
type Store interface {
	Load(ctx context.Context) (models.State, error)
	Save(ctx context.Context, st models.State) error
}

// LedgerService владеет текущим состоянием и является единственным писателем.
type LedgerService struct {
	mu      sync.Mutex
	state   models.State
	store   Store
	engine  *ledger.Engine
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewLedgerService загружает состояние из store и создаёт сервис.
func NewLedgerService(ctx context.Context, store Store, engine *ledger.Engine, log *slog.Logger, m *metrics.Metrics) (*LedgerService, error) {
	const op = "services.NewLedgerService"
	st, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("state loaded",
		slog.Int("customers", len(st.Customers)),
		slog.Int("transactions", len(st.Transactions)),
	)
	return &LedgerService{
		state:   st,
		store:   store,
		engine:  engine,
		log:     log,
		metrics: m,
	}, nil
}

// commit принимает новое состояние и сохраняет его.
// При ошибке сохранения изменение остаётся в памяти. Вызывается под s.mu.
func (s *LedgerService) commit(ctx context.Context, op string, next models.State) error {
	s.state = next
	if err := s.store.Save(ctx, next); err != nil {
		s.metrics.PersistenceFailures.Inc()
		s.log.Error("failed to persist state", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ledger.ErrPersistenceFailed, err)
	}
	return nil
}

// Enroll записывает клиента на план. Пустое имя возвращает nil без изменений.
func (s *LedgerService) Enroll(ctx context.Context, req ledger.EnrollRequest) (*models.Customer, error) {
	const op = "services.Enroll"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, customer, err := s.engine.Enroll(s.state, req)
	if err != nil || customer == nil {
		return nil, err
	}
	s.metrics.Enrollments.Inc()
	s.metrics.ObserveTransactions(next.Transactions[len(next.Transactions)-1])
	s.log.Info("customer enrolled", slog.String("id", customer.ID), slog.String("plan", customer.PlanID))
	return customer, s.commit(ctx, op, next)
}

// RecordMeal отмечает обед клиента по ID позиции меню.
func (s *LedgerService) RecordMeal(ctx context.Context, customerID, menuItemID string, portion models.Portion, quantity int) (ledger.MealResult, error) {
	const op = "services.RecordMeal"
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.state.FindMenuItem(menuItemID)
	if !ok {
		return ledger.MealResult{}, fmt.Errorf("%w: %s", ledger.ErrUnknownMenuItem, menuItemID)
	}
	next, res, err := s.engine.RecordMeal(s.state, ledger.MealRequest{
		CustomerID: customerID,
		Item:       item,
		Portion:    portion,
		Quantity:   quantity,
	})
	if err != nil {
		return ledger.MealResult{}, err
	}
	s.metrics.ObserveMeal(res.Covered, res.PayableUnits)
	s.metrics.ObserveTransactions(res.Transactions...)
	s.log.Debug("meal recorded",
		slog.String("customer", customerID),
		slog.Int("covered", res.Covered),
		slog.String("payable", res.PayableAmount.String()),
	)
	return res, s.commit(ctx, op, next)
}

// AddBreak продлевает план клиента на days дней.
func (s *LedgerService) AddBreak(ctx context.Context, customerID string, days int) (*models.Customer, error) {
	const op = "services.AddBreak"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, customer, err := s.engine.AddBreak(s.state, customerID, days)
	if err != nil {
		return nil, err
	}
	s.metrics.Breaks.Inc()
	return customer, s.commit(ctx, op, next)
}

// AddTransaction добавляет ручной приход или расход.
func (s *LedgerService) AddTransaction(ctx context.Context, req ledger.TransactionRequest) (models.Transaction, error) {
	const op = "services.AddTransaction"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, tx, err := s.engine.AddTransaction(s.state, req)
	if err != nil {
		return models.Transaction{}, err
	}
	s.metrics.ObserveTransactions(tx)
	return tx, s.commit(ctx, op, next)
}

// UpdateSettings применяет частичное обновление настроек.
func (s *LedgerService) UpdateSettings(ctx context.Context, patch ledger.SettingsPatch) (models.Settings, error) {
	const op = "services.UpdateSettings"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, settings := s.engine.UpdateSettings(s.state, patch)
	return settings, s.commit(ctx, op, next)
}

// SignIn запоминает вошедшего пользователя. Хэш PIN в документ не попадает.
func (s *LedgerService) SignIn(ctx context.Context, user models.User) error {
	const op = "services.SignIn"
	s.mu.Lock()
	defer s.mu.Unlock()

	user.PinHash = ""
	return s.commit(ctx, op, s.engine.SignIn(s.state, user))
}

// SignOut сбрасывает текущего пользователя.
func (s *LedgerService) SignOut(ctx context.Context) error {
	const op = "services.SignOut"
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, op, s.engine.SignOut(s.state))
}

// ToggleTheme переключает тему и возвращает новое значение.
func (s *LedgerService) ToggleTheme(ctx context.Context) (bool, error) {
	const op = "services.ToggleTheme"
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.engine.ToggleDarkMode(s.state)
	return next.DarkMode, s.commit(ctx, op, next)
}

// Snapshot возвращает копию текущего состояния.
func (s *LedgerService) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Customers = slices.Clone(st.Customers)
	st.Transactions = slices.Clone(st.Transactions)
	st.Plans = slices.Clone(st.Plans)
	st.MenuItems = slices.Clone(st.MenuItems)
	if st.CurrentUser != nil {
		u := *st.CurrentUser
		st.CurrentUser = &u
	}
	return st
}

// Alerts вычисляет напоминания о продлении и долгах на текущий момент.
func (s *LedgerService) Alerts() ledger.Alerts {
	return s.engine.Alerts(s.Snapshot())
}

// Summary возвращает показатели для главного экрана.
func (s *LedgerService) Summary() ledger.Summary {
	return ledger.Summarize(s.Snapshot(), s.engine.Now())
}

// Search ищет клиентов по имени или телефону.
func (s *LedgerService) Search(query string) []models.Customer {
	return ledger.SearchCustomers(s.Snapshot(), query)
}

// CashFeed возвращает денежные проводки от новых к старым.
func (s *LedgerService) CashFeed() []models.Transaction {
	return ledger.CashFeed(s.Snapshot())
}

// CustomerTransactions возвращает историю проводок клиента.
func (s *LedgerService) CustomerTransactions(customerID string) ([]models.Transaction, error) {
	st := s.Snapshot()
	if st.FindCustomer(customerID) < 0 {
		return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownCustomer, customerID)
	}
	return ledger.CustomerTransactions(st, customerID), nil
}

// Export пишет CSV-выгрузку проводок и клиентов в w.
func (s *LedgerService) Export(w io.Writer) error {
	st := s.Snapshot()
	return export.WriteCSV(w, st.Transactions, st.Customers)
}

// ExportFileName возвращает имя файла выгрузки на сегодня.
func (s *LedgerService) ExportFileName() string {
	return export.FileName(s.engine.Now())
}
