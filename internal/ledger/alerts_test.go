package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/messmate/internal/models"
)

func customerAt(id string, days, meals int, balance int64) models.Customer {
	return models.Customer{
		ID:             id,
		Name:           id,
		ExpiryDate:     fixedNow.Add(time.Duration(days) * 24 * time.Hour),
		MealsRemaining: meals,
		Balance:        dec(balance),
		IsActive:       true,
	}
}

func TestDaysToExpiry(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{name: "exact days", expiry: fixedNow.Add(10 * 24 * time.Hour), want: 10},
		{name: "partial day rounds up", expiry: fixedNow.Add(2*24*time.Hour + time.Hour), want: 3},
		{name: "same instant", expiry: fixedNow, want: 0},
		{name: "expired yesterday", expiry: fixedNow.Add(-24 * time.Hour), want: -1},
		{name: "expired an hour ago", expiry: fixedNow.Add(-time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysToExpiry(tt.expiry, fixedNow))
		})
	}
}

func TestRenewalAlerts_MealThresholdScenario(t *testing.T) {
	st := baseState()
	st.Customers = []models.Customer{customerAt("c1", 10, 2, 0)}

	alerts := RenewalAlerts(st, fixedNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, 12, alerts[0].UrgencyScore)
	assert.Equal(t, 10, alerts[0].DaysToExpiry)
	assert.True(t, alerts[0].LowMeals)
	assert.False(t, alerts[0].ExpiringSoon)
}

func TestRenewalAlerts_Ordering(t *testing.T) {
	st := baseState()
	inactive := customerAt("inactive", 1, 0, 0)
	inactive.IsActive = false
	st.Customers = []models.Customer{
		customerAt("not-due", 20, 40, 0),
		customerAt("soon", 2, 30, 0),    // 32
		customerAt("low", 15, 4, 0),     // 19
		customerAt("expired", -5, 1, 0), // -4
		customerAt("tie-a", 3, 16, 0),   // 19
		inactive,
	}

	alerts := RenewalAlerts(st, fixedNow)

	var ids []string
	for _, a := range alerts {
		ids = append(ids, a.Customer.ID)
	}
	assert.Equal(t, []string{"expired", "low", "tie-a", "soon"}, ids)
	assert.Equal(t, -4, alerts[0].UrgencyScore)
	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t, alerts[i-1].UrgencyScore, alerts[i].UrgencyScore)
	}
}

func TestPendingPayments(t *testing.T) {
	st := baseState()
	st.Customers = []models.Customer{
		customerAt("at-threshold", 10, 10, 1000),
		customerAt("small", 10, 10, 1200),
		customerAt("big", 10, 10, 5000),
		customerAt("credit", 10, 10, -300),
		customerAt("small-twin", 10, 10, 1200),
	}

	pending := PendingPayments(st)

	var ids []string
	for _, c := range pending {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"big", "small", "small-twin"}, ids)
}

func TestEngine_AlertsFollowClock(t *testing.T) {
	now := fixedNow
	e := New(WithClock(func() time.Time { return now }))

	st := baseState()
	st.Customers = []models.Customer{customerAt("c1", 10, 40, 0)}

	assert.Empty(t, e.Alerts(st).Renewals)

	now = fixedNow.Add(8 * 24 * time.Hour)
	renewals := e.Alerts(st).Renewals
	require.Len(t, renewals, 1)
	assert.Equal(t, 2, renewals[0].DaysToExpiry)
	assert.True(t, renewals[0].ExpiringSoon)
}
