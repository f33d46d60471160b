package user

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the persisted form of an expense date.
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day t falls on in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errors.Wrap(err, "parse date")
	}
	return DateOf(t), nil
}

// In returns midnight of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// MonthIndex is the zero-based calendar month, 0 for January.
func (d Date) MonthIndex() int {
	return int(d.Month()) - 1
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) > len(DateLayout) {
		// full timestamps written by older clients
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return errors.Wrap(err, "parse date")
		}
		*d = DateOf(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type ExpenseRecord struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     Date    `json:"date"`
}

type Record struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Expenses     []ExpenseRecord `json:"expenses"`
	MonthlyTotal map[int]float64 `json:"monthlyTotal"`
}

func New(name, email, password string) Record {
	return Record{
		Name:         name,
		Email:        email,
		Password:     password,
		Expenses:     []ExpenseRecord{},
		MonthlyTotal: map[int]float64{},
	}
}

// Clone returns a copy that shares no slices or maps with r.
func (r Record) Clone() Record {
	res := r
	res.Expenses = make([]ExpenseRecord, len(r.Expenses))
	copy(res.Expenses, r.Expenses)
	res.MonthlyTotal = make(map[int]float64, len(r.MonthlyTotal))
	for m, total := range r.MonthlyTotal {
		res.MonthlyTotal[m] = total
	}
	return res
}

func (r Record) TotalExpenses() float64 {
	total := 0.0
	for _, exp := range r.Expenses {
		total += exp.Amount
	}
	return total
}

func (r Record) MonthTotal(month time.Month) float64 {
	return r.MonthlyTotal[int(month)-1]
}
