package reports

import (
	"strings"
	"time"

	"max.ks1230/expense-tracker/internal/customerr"
	"max.ks1230/expense-tracker/internal/entity/user"
)

type Period string

const (
	All       Period = "all"
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

var periodAliases = map[string]Period{
	"":          All,
	"all":       All,
	"week":      Weekly,
	"weekly":    Weekly,
	"month":     Monthly,
	"monthly":   Monthly,
	"quarter":   Quarterly,
	"quarterly": Quarterly,
	"year":      Yearly,
	"yearly":    Yearly,
}

func ParsePeriod(s string) (Period, error) {
	p, ok := periodAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &customerr.ValidationError{Field: "period", Reason: "unknown period " + s}
	}
	return p, nil
}

func Periods() []Period {
	return []Period{All, Weekly, Monthly, Quarterly, Yearly}
}

// WindowKey names the report window of period anchored at ref, e.g.
// "weekly:2024-03-10". Reports are cached under it so a new window never
// reuses the previous window's report.
func WindowKey(period Period, ref time.Time) string {
	if period == All || period == "" {
		return string(All)
	}
	from, _ := periodBounds(period, ref)
	return string(period) + ":" + from.Format(user.DateLayout)
}

// WindowKeys lists the window keys of every period at ref.
func WindowKeys(ref time.Time) []string {
	periods := Periods()
	res := make([]string, 0, len(periods))
	for _, p := range periods {
		res = append(res, WindowKey(p, ref))
	}
	return res
}
