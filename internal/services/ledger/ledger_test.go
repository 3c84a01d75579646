package services_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/metrics"
	"github.com/magabrotheeeer/messmate/internal/models"
	services "github.com/magabrotheeeer/messmate/internal/services/ledger"
	"github.com/magabrotheeeer/messmate/internal/storage"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Load(ctx context.Context) (models.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.State), args.Error(1)
}

func (m *StoreMock) Save(ctx context.Context, st models.State) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newEngine() *ledger.Engine {
	var n int
	return ledger.New(
		ledger.WithClock(func() time.Time { return fixedNow }),
		ledger.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func newService(t *testing.T, store *StoreMock) (*services.LedgerService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := services.NewLedgerService(context.Background(), store, newEngine(), log, m)
	require.NoError(t, err)
	return svc, m
}

func TestNewLedgerService_LoadError(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(models.State{}, errors.New("boom"))

	_, err := services.NewLedgerService(context.Background(), store, newEngine(),
		slog.New(slog.NewTextHandler(io.Discard, nil)), metrics.New(prometheus.NewRegistry()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestLedgerService_EnrollAndMeal(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, m := newService(t, store)
	ctx := context.Background()

	customer, err := svc.Enroll(ctx, ledger.EnrollRequest{Name: "Ravi", PlanID: "plan_1"})
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, 60, customer.MealsRemaining)

	res, err := svc.RecordMeal(ctx, customer.ID, "m1", models.PortionFull, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Covered)
	assert.True(t, res.PayableAmount.IsZero())

	st := svc.Snapshot()
	require.Len(t, st.Customers, 1)
	assert.Equal(t, 58, st.Customers[0].MealsRemaining)
	assert.Len(t, st.Transactions, 2)

	store.AssertNumberOfCalls(t, "Save", 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Enrollments))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Meals.WithLabelValues("plan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transactions.WithLabelValues("SUBSCRIPTION")))
}

func TestLedgerService_EnrollBlankNameIsNoop(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	svc, _ := newService(t, store)

	customer, err := svc.Enroll(context.Background(), ledger.EnrollRequest{Name: "   ", PlanID: "plan_1"})
	require.NoError(t, err)
	assert.Nil(t, customer)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLedgerService_ValidationErrorsDoNotSave(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	svc, _ := newService(t, store)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name: "unknown plan",
			call: func() error {
				_, err := svc.Enroll(ctx, ledger.EnrollRequest{Name: "Asha", PlanID: "nope"})
				return err
			},
			wantErr: ledger.ErrUnknownPlan,
		},
		{
			name: "unknown menu item",
			call: func() error {
				_, err := svc.RecordMeal(ctx, "c1", "m99", models.PortionFull, 1)
				return err
			},
			wantErr: ledger.ErrUnknownMenuItem,
		},
		{
			name: "unknown customer",
			call: func() error {
				_, err := svc.RecordMeal(ctx, "c1", "m1", models.PortionFull, 1)
				return err
			},
			wantErr: ledger.ErrUnknownCustomer,
		},
		{
			name: "break on unknown customer",
			call: func() error {
				_, err := svc.AddBreak(ctx, "c1", 3)
				return err
			},
			wantErr: ledger.ErrUnknownCustomer,
		},
		{
			name: "zero amount",
			call: func() error {
				_, err := svc.AddTransaction(ctx, ledger.TransactionRequest{
					Type:        models.TransactionExpense,
					Amount:      decimal.Zero,
					Description: "Gas",
				})
				return err
			},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "history of unknown customer",
			call: func() error {
				_, err := svc.CustomerTransactions("c1")
				return err
			},
			wantErr: ledger.ErrUnknownCustomer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.wantErr)
		})
	}
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, svc.Snapshot().Transactions)
}

func TestLedgerService_PersistenceFailureKeepsChange(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	svc, m := newService(t, store)

	tx, err := svc.AddTransaction(context.Background(), ledger.TransactionRequest{
		Type:        models.TransactionExpense,
		Amount:      decimal.NewFromInt(900),
		Description: "Gas refill",
		Category:    "Gas Cylinder",
	})
	require.ErrorIs(t, err, ledger.ErrPersistenceFailed)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "Gas refill", tx.Description)

	st := svc.Snapshot()
	require.Len(t, st.Transactions, 1)
	assert.Equal(t, tx.ID, st.Transactions[0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceFailures))
}

func TestLedgerService_SessionAndTheme(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.SignIn(ctx, models.User{Username: "admin", PinHash: "secret-hash", Role: models.RoleOwner}))
	st := svc.Snapshot()
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "admin", st.CurrentUser.Username)
	assert.Empty(t, st.CurrentUser.PinHash)

	dark, err := svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	dark, err = svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.False(t, dark)

	require.NoError(t, svc.SignOut(ctx))
	assert.Nil(t, svc.Snapshot().CurrentUser)
}

func TestLedgerService_SettingsAndAlerts(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newService(t, store)
	ctx := context.Background()

	customer, err := svc.Enroll(ctx, ledger.EnrollRequest{Name: "Meena", PlanID: "plan_3"})
	require.NoError(t, err)
	_, err = svc.RecordMeal(ctx, customer.ID, "m2", models.PortionFull, 40)
	require.NoError(t, err)

	days := 30
	threshold := decimal.NewFromInt(100)
	settings, err := svc.UpdateSettings(ctx, ledger.SettingsPatch{SubscriptionDays: &days, BalanceThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, 30, settings.SubscriptionDays)

	alerts := svc.Alerts()
	require.Len(t, alerts.Renewals, 1)
	assert.True(t, alerts.Renewals[0].ExpiringSoon)
	assert.True(t, alerts.Renewals[0].LowMeals)
	require.Len(t, alerts.PendingPayments, 1)
	assert.True(t, alerts.PendingPayments[0].Balance.Equal(decimal.NewFromInt(1500)))

	summary := svc.Summary()
	assert.Equal(t, 1, summary.ActiveCustomers)
	assert.True(t, summary.IncomeThisMonth.Equal(decimal.NewFromInt(1800+1500)))

	assert.Len(t, svc.Search("meen"), 1)
	assert.Len(t, svc.CashFeed(), 2)
	history, err := svc.CustomerTransactions(customer.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestLedgerService_Export(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newService(t, store)

	_, err := svc.Enroll(context.Background(), ledger.EnrollRequest{Name: "Ravi", Phone: "98765", PlanID: "plan_2"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "Type,Date,Category,Amount,Description\nSUBSCRIPTION,"))
	assert.Contains(t, buf.String(), "\"Ravi\",98765,30,0\n")
	assert.Equal(t, "messmate_export_2024-06-01.csv", svc.ExportFileName())
}

func TestLedgerService_ConcurrentMeals(t *testing.T) {
	store := &StoreMock{}
	store.On("Load", mock.Anything).Return(storage.Defaults(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newService(t, store)
	ctx := context.Background()

	customer, err := svc.Enroll(ctx, ledger.EnrollRequest{Name: "Ravi", PlanID: "plan_2"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordMeal(ctx, customer.ID, "m4", models.PortionHalf, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st := svc.Snapshot()
	assert.Equal(t, 0, st.Customers[0].MealsRemaining)
	assert.True(t, st.Customers[0].Balance.Equal(decimal.NewFromInt(40*10)))
	assert.Len(t, st.Transactions, 41)
}
