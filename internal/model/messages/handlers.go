package messages

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"max.ks1230/expense-tracker/internal/customerr"
	"max.ks1230/expense-tracker/internal/entity/category"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/directory"
	"max.ks1230/expense-tracker/internal/model/ledger"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/session"
	"max.ks1230/expense-tracker/internal/model/storage"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am ExpenseTracker bot 🤖"
	loveToTalkMessage     = "I would love to talk about it more! Try /help"
	okMessage             = "Gotcha!"
	noExpensesMessage     = "No expenses added yet.\nUse /expense to add expenses."
	noMatchingMessage     = "No expenses match the filter"
	loggedOutMessage      = "You are logged out"
	notLoggedInMessage    = "You are not logged in. Please /login or /register first"

	registeredMessage = "Account created and logged in successfully! Welcome, %s"
	welcomeMessage    = "Welcome back, %s!"
	whoAmIMessage     = "%s <%s>, %d expenses recorded"

	duplicateUserMessage = "User with this email already exists!"
	authFailedMessage    = "User not found or incorrect credentials!"
	notFoundMessage      = "Your account could not be found, please /login again"

	incorrectUsageMessage   = "That is an incorrect command usage"
	incorrectExpenseMessage = "Your expense amount is incorrect"
	incorrectDateMessage    = "The date is incorrect. Should be dd.mm.yyyy"
	incorrectPeriodMessage  = "Unknown period. Use one of: all, weekly, monthly, quarterly, yearly"
	invalidInputMessage     = "Invalid %s: %s"
)

const (
	startCommand    = "/start"
	helpCommand     = "/help"
	registerCommand = "/register"
	loginCommand    = "/login"
	logoutCommand   = "/logout"
	meCommand       = "/me"
	expenseCommand  = "/expense"
	summaryCommand  = "/summary"
	statsCommand    = "/stats"
	listCommand     = "/list"
)

var commands = []string{
	startCommand, helpCommand, registerCommand, loginCommand, logoutCommand,
	meCommand, expenseCommand, summaryCommand, statsCommand, listCommand,
}

var helpMessage = strings.Join([]string{
	"/register <name> <email> <password> - create an account",
	"/login <email> <password> - log in",
	"/logout - log out",
	"/me - who is logged in",
	"/expense <category> <amount> [dd.mm.yyyy] - add an expense",
	"/summary - total and current month expenses",
	"/stats [all|weekly|monthly|quarterly|yearly] - expenses by category",
	"/list [category] [dd.mm.yyyy] - list expenses",
	"",
	"Categories: " + strings.Join(category.All, ", "),
}, "\n")

type config interface {
	Location() *time.Location
	EnforceCategories() bool
}

type statisticsGenerator interface {
	Statistics(ctx context.Context, rec user.Record, period reports.Period, ref time.Time) (reports.Statistics, error)
}

// chat is the per-message view of one chat's session and ledger.
type chat struct {
	session *session.State
	ledger  *ledger.Engine
}

type handler func(ctx context.Context, arg string, c *chat) (string, error)

type handlerMap map[string]handler

// HandlerService serves every chat from one shared user directory. Each chat
// keeps its own CurrentUser snapshot under a chat-scoped key.
type HandlerService struct {
	handlersMap handlerMap
	store       storage.Store
	dir         *directory.Directory
	generator   statisticsGenerator
	config      config
	ledgerOpts  []ledger.Option
}

func NewHandler(store storage.Store, generator statisticsGenerator, config config, ledgerOpts ...ledger.Option) *HandlerService {
	res := &HandlerService{
		store:      store,
		dir:        directory.New(store),
		generator:  generator,
		config:     config,
		ledgerOpts: ledgerOpts,
	}
	res.handlersMap = newMap(res)
	return res
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[helpCommand] = s.handleHelp
	m[registerCommand] = s.handleRegister
	m[loginCommand] = s.handleLogin
	m[logoutCommand] = s.handleLogout
	m[meCommand] = s.handleMe
	m[expenseCommand] = s.handleExpense
	m[summaryCommand] = s.handleSummary
	m[statsCommand] = s.handleStats
	m[listCommand] = s.handleList

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, chatID int64) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if !ok {
		return dontUnderstandMessage, nil
	}

	c, err := s.openChat(ctx, chatID)
	if err != nil {
		return "", errors.Wrap(err, "handle message")
	}

	resp, err := handler(ctx, arg, c)
	if err != nil {
		if msg, ok := userMessage(err); ok {
			return msg, nil
		}
		return resp, errors.Wrap(err, "handle message")
	}
	return resp, nil
}

func (s *HandlerService) openChat(ctx context.Context, chatID int64) (*chat, error) {
	sessionStore := storage.Prefixed(s.store, strconv.FormatInt(chatID, 10))
	state, err := session.New(ctx, s.dir, sessionStore)
	if err != nil {
		return nil, err
	}
	if err = state.Refresh(ctx); err != nil {
		return nil, err
	}
	return &chat{
		session: state,
		ledger:  ledger.New(state, s.dir, s.config, s.ledgerOpts...),
	}, nil
}

// userMessage turns domain errors into replies, the rest are unexpected.
func userMessage(err error) (string, bool) {
	var (
		validationErr *customerr.ValidationError
		duplicateErr  *customerr.DuplicateUserError
		authErr       *customerr.AuthError
		noSessionErr  *customerr.NoSessionError
		notFoundErr   *customerr.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf(invalidInputMessage, validationErr.Field, validationErr.Reason), true
	case errors.As(err, &duplicateErr):
		return duplicateUserMessage, true
	case errors.As(err, &authErr):
		return authFailedMessage, true
	case errors.As(err, &noSessionErr):
		return notLoggedInMessage, true
	case errors.As(err, &notFoundErr):
		return notFoundMessage, true
	}
	return "", false
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ *chat) (string, error) {
	return helloMessage + "\n\n" + helpMessage, nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ string, _ *chat) (string, error) {
	return helpMessage, nil
}

func (s *HandlerService) handleRegister(ctx context.Context, arg string, c *chat) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 3 {
		return incorrectUsageMessage, nil
	}
	name := strings.Join(args[:len(args)-2], " ")
	email, password := args[len(args)-2], args[len(args)-1]

	if err := session.ValidateRegistration(name, email, password); err != nil {
		return "", err
	}
	rec, err := c.session.Register(ctx, name, email, password)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(registeredMessage, rec.Name), nil
}

func (s *HandlerService) handleLogin(ctx context.Context, arg string, c *chat) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	rec, err := c.session.Login(ctx, args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(welcomeMessage, rec.Name), nil
}

func (s *HandlerService) handleLogout(ctx context.Context, _ string, c *chat) (string, error) {
	if err := c.session.Logout(ctx); err != nil {
		return "", err
	}
	return loggedOutMessage, nil
}

func (s *HandlerService) handleMe(_ context.Context, _ string, c *chat) (string, error) {
	rec, ok := c.session.Current()
	if !ok {
		return notLoggedInMessage, nil
	}
	return fmt.Sprintf(whoAmIMessage, rec.Name, rec.Email, len(rec.Expenses)), nil
}

func (s *HandlerService) handleExpense(ctx context.Context, arg string, c *chat) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 2 || len(args) > 3 {
		return incorrectUsageMessage, nil
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[1], ",", "."), 64)
	if err != nil {
		return incorrectExpenseMessage, nil
	}
	date := c.ledger.Today()
	if len(args) == 3 {
		date, err = parseDate(args[2], s.config.Location())
		if err != nil {
			return incorrectDateMessage, nil
		}
	}

	if err = c.ledger.AddExpense(ctx, amount, args[0], date); err != nil {
		return "", err
	}
	return okMessage, nil
}

func (s *HandlerService) handleSummary(_ context.Context, _ string, c *chat) (string, error) {
	if _, ok := c.session.Current(); !ok {
		return notLoggedInMessage, nil
	}
	return formatSummary(c.ledger.Summary()), nil
}

func (s *HandlerService) handleStats(ctx context.Context, arg string, c *chat) (string, error) {
	rec, ok := c.session.Current()
	if !ok {
		return notLoggedInMessage, nil
	}
	period, err := reports.ParsePeriod(arg)
	if err != nil {
		return incorrectPeriodMessage, nil
	}

	stats, err := s.generator.Statistics(ctx, rec, period, c.ledger.Now())
	if err != nil {
		return "", err
	}
	return formatStatistics(stats), nil
}

func (s *HandlerService) handleList(_ context.Context, arg string, c *chat) (string, error) {
	if _, ok := c.session.Current(); !ok {
		return notLoggedInMessage, nil
	}
	expenses := c.ledger.Expenses()
	if len(expenses) == 0 {
		return noExpensesMessage, nil
	}

	var filter reports.ListFilter
	for _, a := range strings.Fields(arg) {
		if date, err := parseDate(a, s.config.Location()); err == nil {
			filter.Date = date
			continue
		}
		filter.Category = a
	}

	expenses = reports.Filter(expenses, filter)
	if len(expenses) == 0 {
		return noMatchingMessage, nil
	}
	return formatExpenses(expenses), nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string, _ *chat) (string, error) {
	return loveToTalkMessage, nil
}
