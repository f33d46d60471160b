package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/customerr"
	"max.ks1230/expense-tracker/internal/entity/category"
	"max.ks1230/expense-tracker/internal/entity/user"
)

func expense(amount float64, cat string, y int, m time.Month, d int) user.ExpenseRecord {
	return user.ExpenseRecord{Amount: amount, Category: cat, Date: user.NewDate(y, m, d)}
}

func dates(exps []user.ExpenseRecord) []string {
	res := make([]string, 0, len(exps))
	for _, exp := range exps {
		res = append(res, exp.Date.String())
	}
	return res
}

var sample = []user.ExpenseRecord{
	expense(10, "Food", 2023, time.March, 20),
	expense(20, "Food", 2024, time.February, 29),
	expense(30, "Bills", 2024, time.March, 1),
	expense(40, "Travel", 2024, time.March, 10),
	expense(50, "Health", 2024, time.March, 15),
	expense(60, "Other", 2024, time.March, 31),
	expense(70, "Food", 2024, time.July, 1),
	expense(80, "Food", 2024, time.August, 31),
	expense(90, "Food", 2024, time.September, 30),
	expense(100, "Food", 2024, time.October, 1),
	expense(110, "Food", 2024, time.June, 30),
}

func Test_OnMonthly_ShouldKeepSameMonthAndYear(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	res := FilterByPeriod(sample, Monthly, ref)

	assert.Equal(t, []string{"2024-03-01", "2024-03-10", "2024-03-15", "2024-03-31"}, dates(res))
}

func Test_OnQuarterly_ShouldKeepSameQuarterAndYear(t *testing.T) {
	ref := time.Date(2024, time.August, 1, 9, 0, 0, 0, time.UTC)

	res := FilterByPeriod(sample, Quarterly, ref)

	assert.Equal(t, []string{"2024-07-01", "2024-08-31", "2024-09-30"}, dates(res))
}

func Test_OnYearly_ShouldKeepSameYear(t *testing.T) {
	ref := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)

	res := FilterByPeriod(sample, Yearly, ref)

	assert.Len(t, res, len(sample)-1)
	for _, exp := range res {
		assert.Equal(t, 2024, exp.Date.Year())
	}
}

func Test_OnWeekly_ShouldKeepSundayToNow(t *testing.T) {
	// Wednesday
	ref := time.Date(2024, time.March, 13, 18, 30, 0, 0, time.UTC)
	exps := []user.ExpenseRecord{
		expense(1, "Food", 2024, time.March, 9),  // Saturday before
		expense(2, "Food", 2024, time.March, 10), // Sunday
		expense(3, "Food", 2024, time.March, 13), // today
		expense(4, "Food", 2024, time.March, 14), // tomorrow
	}

	res := FilterByPeriod(exps, Weekly, ref)

	assert.Equal(t, []string{"2024-03-10", "2024-03-13"}, dates(res))
}

func Test_OnWeeklyOnSunday_ShouldKeepOnlyToday(t *testing.T) {
	ref := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	exps := []user.ExpenseRecord{
		expense(1, "Food", 2024, time.March, 9),
		expense(2, "Food", 2024, time.March, 10),
	}

	res := FilterByPeriod(exps, Weekly, ref)

	assert.Equal(t, []string{"2024-03-10"}, dates(res))
}

func Test_OnPeriodInOtherLocation_ShouldCompareCalendarDays(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ref := time.Date(2024, time.April, 1, 1, 0, 0, 0, loc)
	exps := []user.ExpenseRecord{
		expense(1, "Food", 2024, time.March, 31),
		expense(2, "Food", 2024, time.April, 1),
	}

	res := FilterByPeriod(exps, Monthly, ref)

	assert.Equal(t, []string{"2024-04-01"}, dates(res))
}

func Test_OnAll_ShouldKeepEverythingInOrder(t *testing.T) {
	res := FilterByPeriod(sample, All, time.Now())

	assert.Equal(t, sample, res)
}

func Test_OnTotalsByCategory_ShouldIgnoreCase(t *testing.T) {
	exps := []user.ExpenseRecord{
		{Amount: 100, Category: "Food"},
		{Amount: 50, Category: "food"},
	}

	res := TotalsByCategory(exps, category.All)

	require.Len(t, res, len(category.All))
	for i, total := range res {
		assert.Equal(t, category.All[i], total.Category)
		if total.Category == category.Food {
			assert.Equal(t, 150.0, total.Amount)
		} else {
			assert.Zero(t, total.Amount)
		}
	}
}

func Test_OnTotalsByCategory_ShouldSkipUnknownCategories(t *testing.T) {
	exps := []user.ExpenseRecord{{Amount: 5, Category: "Gifts"}}

	res := TotalsByCategory(exps, []string{category.Other})

	assert.Equal(t, []CategoryTotal{{Category: category.Other}}, res)
}

func Test_OnListFilter_ShouldMatchCategoryAndDate(t *testing.T) {
	assert.Len(t, Filter(sample, ListFilter{}), len(sample))
	assert.Len(t, Filter(sample, ListFilter{Category: "all"}), len(sample))
	assert.Equal(t, []string{"2024-03-01"}, dates(Filter(sample, ListFilter{Category: "bills"})))
	assert.Equal(t,
		[]string{"2024-07-01"},
		dates(Filter(sample, ListFilter{Category: "food", Date: user.NewDate(2024, time.July, 1)})))
	assert.Empty(t, Filter(sample, ListFilter{Category: "travel", Date: user.NewDate(2024, time.July, 1)}))
}

func Test_ParsePeriod(t *testing.T) {
	cases := map[string]Period{
		"":          All,
		"all":       All,
		"Week":      Weekly,
		"monthly":   Monthly,
		"quarter":   Quarterly,
		" yearly ":  Yearly,
		"quarterly": Quarterly,
	}
	for in, want := range cases {
		got, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePeriod("decade")
	var valErr *customerr.ValidationError
	assert.ErrorAs(t, err, &valErr)
}
