package ledger

import (
	"max.ks1230/expense-tracker/internal/entity/category"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expensesAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tracker",
			Subsystem: "ledger",
			Name:      "expenses_added_total",
		},
		[]string{"category"},
	)
	expensesAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tracker",
			Subsystem: "ledger",
			Name:      "expenses_amount_total",
		},
		[]string{"category"},
	)
)

// observeExpense labels free-form categories as "unknown" to keep the
// label set bounded.
func observeExpense(name string, amount float64) {
	label, ok := category.Parse(name)
	if !ok {
		label = "unknown"
	}
	expensesAdded.WithLabelValues(label).Inc()
	expensesAmount.WithLabelValues(label).Add(amount)
}
