package messages

import (
	"fmt"
	"strings"
	"time"

	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/ledger"
	"max.ks1230/expense-tracker/internal/model/reports"
)

const (
	commandParts = 2
	dateLayout   = "02.01.2006"
)

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts && strings.HasPrefix(split[0], "/") {
		return split[0], strings.TrimSpace(split[1])
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

func parseDate(s string, loc *time.Location) (user.Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return user.Date{}, err
	}
	return user.DateOf(t), nil
}

func formatDate(d user.Date) string {
	return d.Format(dateLayout)
}

func formatSummary(summary ledger.Summary) string {
	return strings.Join([]string{
		fmt.Sprintf("Total Expenses: %.2f", summary.Total),
		fmt.Sprintf("Current Month Expenses: %s: %.2f", summary.Month, summary.MonthTotal),
	}, "\n")
}

func formatStatistics(stats reports.Statistics) string {
	res := make([]string, 0, len(stats.Records)+3)
	res = append(res, fmt.Sprintf("Expenses by category (%s)", stats.Period))
	for _, rec := range stats.Records {
		res = append(res, fmt.Sprintf("%s: %.2f", rec.Category, rec.Amount))
	}
	res = append(res, "", fmt.Sprintf("Total: %.2f", stats.Total))
	return strings.Join(res, "\n")
}

func formatExpenses(exps []user.ExpenseRecord) string {
	res := make([]string, 0, len(exps))
	for _, exp := range exps {
		res = append(res, fmt.Sprintf("%s %s: %.2f", formatDate(exp.Date), exp.Category, exp.Amount))
	}
	return strings.Join(res, "\n")
}
