package reports

import (
	"time"

	"github.com/jinzhu/now"
	"max.ks1230/expense-tracker/internal/entity/category"
	"max.ks1230/expense-tracker/internal/entity/user"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ListFilter narrows the expense list. An empty or "all" category and a
// zero date match everything.
type ListFilter struct {
	Category string
	Date     user.Date
}

// FilterByPeriod keeps the expenses inside the window of period anchored at
// ref. Expense dates are read as days in ref's location.
func FilterByPeriod(exps []user.ExpenseRecord, period Period, ref time.Time) []user.ExpenseRecord {
	if period == All || period == "" {
		return append([]user.ExpenseRecord{}, exps...)
	}

	from, to := periodBounds(period, ref)
	res := make([]user.ExpenseRecord, 0)
	for _, exp := range exps {
		day := exp.Date.In(ref.Location())
		if !day.Before(from) && !day.After(to) {
			res = append(res, exp)
		}
	}
	return res
}

// periodBounds returns the inclusive window of period. A week starts on
// Sunday and ends at ref itself; the other windows are whole calendar units.
func periodBounds(period Period, ref time.Time) (time.Time, time.Time) {
	n := &now.Now{Time: ref, Config: &now.Config{WeekStartDay: time.Sunday}}

	switch period {
	case Weekly:
		return n.BeginningOfWeek(), ref
	case Monthly:
		return n.BeginningOfMonth(), n.EndOfMonth()
	case Quarterly:
		return n.BeginningOfQuarter(), n.EndOfQuarter()
	case Yearly:
		return n.BeginningOfYear(), n.EndOfYear()
	}
	return time.Time{}, ref
}

// TotalsByCategory sums amounts per category, one entry per category in
// the given order. Matching ignores case.
func TotalsByCategory(exps []user.ExpenseRecord, categories []string) []CategoryTotal {
	res := make([]CategoryTotal, 0, len(categories))
	for _, cat := range categories {
		total := CategoryTotal{Category: cat}
		for _, exp := range exps {
			if category.Equal(exp.Category, cat) {
				total.Amount += exp.Amount
			}
		}
		res = append(res, total)
	}
	return res
}

func Filter(exps []user.ExpenseRecord, f ListFilter) []user.ExpenseRecord {
	res := make([]user.ExpenseRecord, 0, len(exps))
	for _, exp := range exps {
		if f.Category != "" && !category.Equal(f.Category, "all") && !category.Equal(f.Category, exp.Category) {
			continue
		}
		if !f.Date.IsZero() && !f.Date.Equal(exp.Date.Time) {
			continue
		}
		res = append(res, exp)
	}
	return res
}
