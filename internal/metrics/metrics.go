// Package metrics описывает счётчики Prometheus для операций учёта.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// Metrics — набор счётчиков, который обновляет сервис учёта.
type Metrics struct {
	Enrollments         prometheus.Counter
	Meals               *prometheus.CounterVec
	Transactions        *prometheus.CounterVec
	Breaks              prometheus.Counter
	PersistenceFailures prometheus.Counter
}

// New создаёт счётчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Enrollments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "messmate",
			Name:      "enrollments_total",
			Help:      "Customers enrolled on a meal plan.",
		}),
		Meals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messmate",
			Name:      "meals_total",
			Help:      "Meal units served, split by whether the plan allowance covered them.",
		}, []string{"coverage"}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messmate",
			Name:      "transactions_total",
			Help:      "Ledger transactions appended, by type.",
		}, []string{"type"}),
		Breaks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "messmate",
			Name:      "breaks_total",
			Help:      "Breaks granted to customers.",
		}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "messmate",
			Name:      "persistence_failures_total",
			Help:      "Document saves that failed after all retries.",
		}),
	}
	reg.MustRegister(m.Enrollments, m.Meals, m.Transactions, m.Breaks, m.PersistenceFailures)
	return m
}

// ObserveMeal учитывает покрытые планом и оплачиваемые порции.
func (m *Metrics) ObserveMeal(covered, payable int) {
	if covered > 0 {
		m.Meals.WithLabelValues("plan").Add(float64(covered))
	}
	if payable > 0 {
		m.Meals.WithLabelValues("extra").Add(float64(payable))
	}
}

// ObserveTransactions учитывает добавленные проводки.
func (m *Metrics) ObserveTransactions(txs ...models.Transaction) {
	for _, tx := range txs {
		m.Transactions.WithLabelValues(string(tx.Type)).Inc()
	}
}
