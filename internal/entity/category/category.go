package category

import "strings"

const (
	Food          = "Food"
	Bills         = "Bills"
	Shopping      = "Shopping"
	Entertainment = "Entertainment"
	Health        = "Health"
	Travel        = "Travel"
	Other         = "Other"
)

// All is the fixed display order of categories.
var All = []string{Food, Bills, Shopping, Entertainment, Health, Travel, Other}

// Parse returns the canonical spelling of name, matched case-insensitively.
func Parse(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range All {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func Valid(name string) bool {
	_, ok := Parse(name)
	return ok
}

func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
