package ledger

import (
	"context"
	"math"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/customerr"
	"max.ks1230/expense-tracker/internal/entity/category"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/reports"
)

type sessionState interface {
	Current() (user.Record, bool)
	SetCurrent(ctx context.Context, rec user.Record) error
}

type userDirectory interface {
	FindByEmail(ctx context.Context, email string) (user.Record, bool, error)
	Replace(ctx context.Context, rec user.Record) error
}

type reportInvalidator interface {
	InvalidateCache(email string, periods []string) error
}

type expensePublisher interface {
	PublishExpense(ctx context.Context, event ExpenseAdded) error
}

type config interface {
	Location() *time.Location
	EnforceCategories() bool
}

// ExpenseAdded describes an accepted expense together with the owner's
// updated running total for its month.
type ExpenseAdded struct {
	Email        string  `json:"email"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	MonthIndex   int     `json:"monthIndex"`
	MonthlyTotal float64 `json:"monthlyTotal"`
}

type Summary struct {
	Total      float64
	Month      time.Month
	MonthTotal float64
}

type Option func(e *Engine)

func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

func WithCache(cache reportInvalidator) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

func WithPublisher(publisher expensePublisher) Option {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

// Engine is the only writer of a user's expenses and monthly totals.
type Engine struct {
	session   sessionState
	dir       userDirectory
	loc       *time.Location
	strict    bool
	clock     func() time.Time
	cache     reportInvalidator
	publisher expensePublisher
}

func New(session sessionState, dir userDirectory, config config, opts ...Option) *Engine {
	e := &Engine{
		session: session,
		dir:     dir,
		loc:     config.Location(),
		strict:  config.EnforceCategories(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now is the engine clock in the configured location.
func (e *Engine) Now() time.Time {
	return e.clock().In(e.loc)
}

func (e *Engine) Today() user.Date {
	return user.DateOf(e.Now())
}

// AddExpense appends an expense to the logged-in user's directory record and
// bumps the running total of its calendar month. Totals are keyed by month
// only, so the same month of different years shares one total.
func (e *Engine) AddExpense(ctx context.Context, amount float64, cat string, date user.Date) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "addExpense")
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}()

	current, ok := e.session.Current()
	if !ok {
		return &customerr.NoSessionError{}
	}

	cat, err = e.validate(amount, cat, date)
	if err != nil {
		return err
	}

	// other sessions of the same user may have written since this snapshot
	rec, found, err := e.dir.FindByEmail(ctx, current.Email)
	if err != nil {
		return errors.Wrap(err, "add expense")
	}
	if !found {
		return &customerr.NotFoundError{Email: current.Email}
	}

	month := date.MonthIndex()
	rec.Expenses = append(rec.Expenses, user.ExpenseRecord{
		Amount:   amount,
		Category: cat,
		Date:     date,
	})
	if rec.MonthlyTotal == nil {
		rec.MonthlyTotal = map[int]float64{}
	}
	rec.MonthlyTotal[month] += amount

	if err = e.dir.Replace(ctx, rec); err != nil {
		return errors.Wrap(err, "add expense")
	}
	if err = e.session.SetCurrent(ctx, rec); err != nil {
		return errors.Wrap(err, "add expense")
	}

	observeExpense(cat, amount)
	logger.Info("expense added",
		zap.String("email", rec.Email),
		zap.Float64("amount", amount),
		zap.String("category", cat),
		zap.Stringer("date", date),
	)

	e.afterAdd(ctx, ExpenseAdded{
		Email:        rec.Email,
		Amount:       amount,
		Category:     cat,
		Date:         date.String(),
		MonthIndex:   month,
		MonthlyTotal: rec.MonthlyTotal[month],
	})
	return nil
}

func (e *Engine) validate(amount float64, cat string, date user.Date) (string, error) {
	if amount == 0 || math.IsNaN(amount) {
		return "", &customerr.ValidationError{Field: "amount", Reason: "is required"}
	}
	if amount < 0 || math.IsInf(amount, 0) {
		return "", &customerr.ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	if date.IsZero() {
		return "", &customerr.ValidationError{Field: "date", Reason: "is required"}
	}
	if date.After(e.Today()) {
		return "", &customerr.ValidationError{Field: "date", Reason: "cannot be in the future"}
	}
	if e.strict {
		canonical, ok := category.Parse(cat)
		if !ok {
			return "", &customerr.ValidationError{Field: "category", Reason: "unknown category " + cat}
		}
		return canonical, nil
	}
	return cat, nil
}

// afterAdd runs the side effects that must not undo an accepted expense.
func (e *Engine) afterAdd(ctx context.Context, event ExpenseAdded) {
	if e.cache != nil {
		if err := e.cache.InvalidateCache(event.Email, reports.WindowKeys(e.Now())); err != nil {
			logger.Warn("cannot invalidate cached reports", zap.Error(err), zap.String("email", event.Email))
		}
	}
	if e.publisher != nil {
		if err := e.publisher.PublishExpense(ctx, event); err != nil {
			logger.Error("cannot publish expense", zap.Error(err), zap.String("email", event.Email))
		}
	}
}

// Expenses returns the current user's expenses in insertion order.
func (e *Engine) Expenses() []user.ExpenseRecord {
	rec, ok := e.session.Current()
	if !ok {
		return []user.ExpenseRecord{}
	}
	return rec.Expenses
}

func (e *Engine) TotalExpenses() float64 {
	rec, ok := e.session.Current()
	if !ok {
		return 0
	}
	return rec.TotalExpenses()
}

func (e *Engine) CurrentMonthTotal() float64 {
	rec, ok := e.session.Current()
	if !ok {
		return 0
	}
	return rec.MonthTotal(e.Now().Month())
}

func (e *Engine) Summary() Summary {
	return Summary{
		Total:      e.TotalExpenses(),
		Month:      e.Now().Month(),
		MonthTotal: e.CurrentMonthTotal(),
	}
}
