package ledger

import (
	"math"
	"slices"
	"time"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// RenewalAlert — клиент, которому пора продлевать план.
type RenewalAlert struct {
	Customer     models.Customer `json:"customer"`
	DaysToExpiry int             `json:"daysToExpiry"`
	UrgencyScore int             `json:"urgencyScore"` // Чем меньше, тем срочнее
	ExpiringSoon bool            `json:"expiringSoon"`
	LowMeals     bool            `json:"lowMeals"`
}

// Alerts объединяет оба списка напоминаний.
type Alerts struct {
	Renewals        []RenewalAlert    `json:"renewals"`
	PendingPayments []models.Customer `json:"pendingPayments"`
}

// DaysToExpiry возвращает число дней до окончания плана, округлённое вверх.
// Для истёкших планов значение отрицательное или нулевое.
func DaysToExpiry(expiry, now time.Time) int {
	return int(math.Ceil(float64(expiry.Sub(now)) / float64(24*time.Hour)))
}

// RenewalAlerts отбирает активных клиентов, у которых скоро истекает срок
// или заканчиваются обеды, и сортирует их по возрастанию
// urgencyScore = daysToExpiry + mealsRemaining. При равенстве сохраняется исходный порядок.
func RenewalAlerts(st models.State, now time.Time) []RenewalAlert {
	alerts := make([]RenewalAlert, 0)
	for _, c := range st.Customers {
		if !c.IsActive {
			continue
		}
		days := DaysToExpiry(c.ExpiryDate, now)
		expiringSoon := days <= st.Settings.SubscriptionDays
		lowMeals := c.MealsRemaining <= st.Settings.MealThreshold
		if !expiringSoon && !lowMeals {
			continue
		}
		alerts = append(alerts, RenewalAlert{
			Customer:     c,
			DaysToExpiry: days,
			UrgencyScore: days + c.MealsRemaining,
			ExpiringSoon: expiringSoon,
			LowMeals:     lowMeals,
		})
	}
	slices.SortStableFunc(alerts, func(a, b RenewalAlert) int {
		return a.UrgencyScore - b.UrgencyScore
	})
	return alerts
}

// PendingPayments возвращает клиентов с долгом выше порога, крупнейший долг первым.
func PendingPayments(st models.State) []models.Customer {
	pending := make([]models.Customer, 0)
	for _, c := range st.Customers {
		if c.Balance.GreaterThan(st.Settings.BalanceThreshold) {
			pending = append(pending, c)
		}
	}
	slices.SortStableFunc(pending, func(a, b models.Customer) int {
		return b.Balance.Cmp(a.Balance)
	})
	return pending
}

// Alerts вычисляет напоминания на текущий момент по часам движка.
// Результат не кэшируется: он зависит и от состояния, и от времени.
func (e *Engine) Alerts(st models.State) Alerts {
	return Alerts{
		Renewals:        RenewalAlerts(st, e.now()),
		PendingPayments: PendingPayments(st),
	}
}
