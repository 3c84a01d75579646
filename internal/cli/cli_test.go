package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/messmate/internal/models"
)

type staticLoader struct {
	state models.State
	err   error
}

func (l staticLoader) Load(_ context.Context) (models.State, error) {
	return l.state, l.err
}

type closeCounter struct{ closed int }

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testState() models.State {
	return models.State{
		Settings: models.Settings{SubscriptionDays: 3, MealThreshold: 5, BalanceThreshold: decimal.NewFromInt(500)},
		Customers: []models.Customer{
			{ID: "c1", Name: "Asha", Phone: "98450", ExpiryDate: now.AddDate(0, 0, 2), MealsRemaining: 20, IsActive: true, Balance: decimal.Zero},
			{ID: "c2", Name: "Ravi", Phone: "99001", ExpiryDate: now.AddDate(0, 0, 20), MealsRemaining: 20, IsActive: true, Balance: decimal.NewFromInt(900)},
		},
		Transactions: []models.Transaction{
			{ID: "t1", Type: models.TransactionSubscription, Amount: decimal.NewFromInt(3000), Date: now, Description: "Plan: Monthly", CustomerID: "c1"},
			{ID: "t2", Type: models.TransactionExpense, Amount: decimal.NewFromInt(400), Date: now, Description: "Veg", Category: "Vegetables"},
			{ID: "t3", Type: models.TransactionUsage, Amount: decimal.Zero, Date: now, Description: "Meal", CustomerID: "c1"},
		},
	}
}

func run(t *testing.T, loader StateLoader, args ...string) (string, *closeCounter, error) {
	t.Helper()
	closer := &closeCounter{}
	cmd := NewRootCommand(Deps{
		Open: func(_ context.Context, _ string) (StateLoader, io.Closer, error) {
			return loader, closer, nil
		},
		Now: func() time.Time { return now },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", "config.yaml"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), closer, err
}

func TestAlertsCommand(t *testing.T) {
	out, closer, err := run(t, staticLoader{state: testState()}, "alerts")
	require.NoError(t, err)

	assert.Contains(t, out, "RENEWALS (1)")
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "PENDING PAYMENTS (1)")
	assert.Contains(t, out, "900.00")
	assert.Equal(t, 1, closer.closed)
}

func TestSummaryCommand(t *testing.T) {
	out, _, err := run(t, staticLoader{state: testState()}, "summary")
	require.NoError(t, err)

	assert.Regexp(t, `Active customers\s+2\n`, out)
	assert.Contains(t, out, "3000.00")
	assert.Contains(t, out, "400.00")
	assert.Contains(t, out, "2600.00")
	assert.Contains(t, out, "Meals served")
}

func TestExportCommand(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out, _, err := run(t, staticLoader{state: testState()}, "export", "--out", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "Type,Date,Category,Amount,Description")
		assert.Contains(t, out, "\"Asha\",98450,20,0")
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		out, _, err := run(t, staticLoader{state: testState()}, "export", "-o", path)
		require.NoError(t, err)
		assert.Contains(t, out, path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "EXPENSE,2026-03-10T12:00:00Z,Vegetables,400,\"Veg\"")
	})
}

func TestCommand_LoadError(t *testing.T) {
	_, _, err := run(t, staticLoader{err: errors.New("broken document")}, "alerts")
	assert.ErrorContains(t, err, "broken document")
}

func TestCommand_NoConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cmd := NewRootCommand(Deps{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"summary"})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "config path is not set")
}
