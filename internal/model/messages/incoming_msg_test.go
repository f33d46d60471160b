package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/model/directory"
	"max.ks1230/expense-tracker/internal/model/ledger"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/storage"
)

type testConfig struct{}

func (testConfig) Location() *time.Location {
	return time.UTC
}

func (testConfig) EnforceCategories() bool {
	return false
}

func (testConfig) CacheTTL() time.Duration {
	return time.Minute
}

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendMessage(text string, chatID int64) error {
	return m.Called(text, chatID).Error(0)
}

type handlerMock struct {
	mock.Mock
}

func (m *handlerMock) HandleMessage(ctx context.Context, text string, chatID int64) (string, error) {
	args := m.Called(ctx, text, chatID)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestHandler(store storage.Store) *HandlerService {
	return NewHandler(
		store,
		reports.NewGenerator(testConfig{}, nil),
		testConfig{},
		ledger.WithClock(func() time.Time { return testNow }),
	)
}

func send(t *testing.T, h *HandlerService, chatID int64, text string) string {
	resp, err := h.HandleMessage(context.Background(), text, chatID)
	require.NoError(t, err, text)
	return resp
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", helloMessage+"\n\n"+helpMessage, int64(123)).Return(nil)

	model := NewService(sender, newTestHandler(storage.NewInMemStorage()))
	err := model.HandleIncomingMessage(context.Background(), Message{
		Text:   "/start",
		ChatID: 123,
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnUnknownCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", dontUnderstandMessage, int64(123)).Return(nil)

	model := NewService(sender, newTestHandler(storage.NewInMemStorage()))
	err := model.HandleIncomingMessage(context.Background(), Message{
		Text:   "/none",
		ChatID: 123,
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnHandlerFailure_ShouldApologizeAndReturnError(t *testing.T) {
	sender := &senderMock{}
	handler := &handlerMock{}
	handler.On("HandleMessage", mock.Anything, "/summary", int64(7)).Return("", errors.New("db is down"))
	sender.On("SendMessage", sorryMessage, int64(7)).Return(nil)

	model := NewService(sender, handler)
	err := model.HandleIncomingMessage(context.Background(), Message{Text: "/summary", ChatID: 7})

	assert.Error(t, err)
	sender.AssertExpectations(t)
}

func Test_OnExpenseFlow_ShouldTrackSummaryStatsAndList(t *testing.T) {
	h := newTestHandler(storage.NewInMemStorage())

	assert.Equal(t,
		"Account created and logged in successfully! Welcome, Ann Lee",
		send(t, h, 1, "/register Ann Lee ann@mail.com secret1"))
	assert.Equal(t, okMessage, send(t, h, 1, "/expense Food 100 01.03.2024"))
	assert.Equal(t, okMessage, send(t, h, 1, "/expense bills 50,5"))
	assert.Equal(t, okMessage, send(t, h, 1, "/expense Travel 30 05.02.2024"))

	assert.Equal(t,
		"Total Expenses: 180.50\nCurrent Month Expenses: March: 150.50",
		send(t, h, 1, "/summary"))

	assert.Equal(t,
		"Expenses by category (monthly)\n"+
			"Food: 100.00\nBills: 50.50\nShopping: 0.00\nEntertainment: 0.00\n"+
			"Health: 0.00\nTravel: 0.00\nOther: 0.00\n\nTotal: 150.50",
		send(t, h, 1, "/stats month"))

	assert.Equal(t,
		"01.03.2024 Food: 100.00\n15.03.2024 bills: 50.50\n05.02.2024 Travel: 30.00",
		send(t, h, 1, "/list"))
	assert.Equal(t, "15.03.2024 bills: 50.50", send(t, h, 1, "/list Bills"))
	assert.Equal(t, "05.02.2024 Travel: 30.00", send(t, h, 1, "/list all 05.02.2024"))
	assert.Equal(t, noMatchingMessage, send(t, h, 1, "/list Health"))

	assert.Equal(t, "Ann Lee <ann@mail.com>, 3 expenses recorded", send(t, h, 1, "/me"))
}

func Test_OnSecondChat_ShouldHaveOwnSession(t *testing.T) {
	h := newTestHandler(storage.NewInMemStorage())
	send(t, h, 1, "/register Ann ann@mail.com secret1")
	send(t, h, 1, "/expense Food 10 01.03.2024")

	assert.Equal(t, notLoggedInMessage, send(t, h, 2, "/summary"))
	assert.Equal(t, notLoggedInMessage, send(t, h, 2, "/expense Food 10"))
	assert.Equal(t, "Welcome back, Ann!", send(t, h, 2, "/login ann@mail.com secret1"))
	assert.Equal(t, "Ann <ann@mail.com>, 1 expenses recorded", send(t, h, 2, "/me"))

	assert.Equal(t, loggedOutMessage, send(t, h, 2, "/logout"))
	assert.Equal(t, loggedOutMessage, send(t, h, 2, "/logout"))
	assert.Equal(t, "Ann <ann@mail.com>, 1 expenses recorded", send(t, h, 1, "/me"))
}

func Test_OnExpensesFromTwoChatsOfOneUser_ShouldKeepBoth(t *testing.T) {
	store := storage.NewInMemStorage()
	h := newTestHandler(store)
	send(t, h, 1, "/register Ann ann@mail.com secret1")
	send(t, h, 2, "/login ann@mail.com secret1")

	assert.Equal(t, okMessage, send(t, h, 2, "/expense Food 100 01.03.2024"))
	assert.Equal(t, okMessage, send(t, h, 1, "/expense Bills 50 02.03.2024"))

	rec, ok, err := directory.New(store).FindByEmail(context.Background(), "ann@mail.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, rec.Expenses, 2)
	assert.Equal(t, 150.0, rec.MonthlyTotal[2])

	assert.Equal(t,
		"Total Expenses: 150.00\nCurrent Month Expenses: March: 150.00",
		send(t, h, 2, "/summary"))
}

func Test_OnDomainErrors_ShouldAnswerWithUserMessages(t *testing.T) {
	h := newTestHandler(storage.NewInMemStorage())
	send(t, h, 1, "/register Ann ann@mail.com secret1")

	assert.Equal(t, duplicateUserMessage, send(t, h, 2, "/register Bob ann@mail.com secret2"))
	assert.Equal(t, authFailedMessage, send(t, h, 2, "/login ann@mail.com wrong12"))
	assert.Equal(t, "Invalid password: must be at least 6 characters", send(t, h, 2, "/register Bob bob@mail.com 123"))
	assert.Equal(t, "Invalid date: cannot be in the future", send(t, h, 1, "/expense Food 10 16.03.2024"))
	assert.Equal(t, "Invalid amount: must be a positive number", send(t, h, 1, "/expense Food -10"))
	assert.Equal(t, incorrectExpenseMessage, send(t, h, 1, "/expense Food ten"))
	assert.Equal(t, incorrectDateMessage, send(t, h, 1, "/expense Food 10 2024-03-01"))
	assert.Equal(t, incorrectUsageMessage, send(t, h, 1, "/expense Food"))
	assert.Equal(t, incorrectPeriodMessage, send(t, h, 1, "/stats decade"))
	assert.Equal(t, noExpensesMessage, send(t, h, 1, "/list"))
}

func Test_OnPlainText_ShouldAnswerPolitely(t *testing.T) {
	h := newTestHandler(storage.NewInMemStorage())

	assert.Equal(t, loveToTalkMessage, send(t, h, 1, "hello there"))
}

func Test_ParseCommand(t *testing.T) {
	cases := []struct {
		text, cmd, arg string
	}{
		{"/start", "/start", ""},
		{"  /expense Food 10  ", "/expense", "Food 10"},
		{"hello there", "", "hello there"},
	}
	for _, c := range cases {
		cmd, arg := parseCommand(c.text)
		assert.Equal(t, c.cmd, cmd, c.text)
		assert.Equal(t, c.arg, arg, c.text)
	}
}

func Test_CommandLabel(t *testing.T) {
	assert.Equal(t, "/stats", commandLabel("/stats"))
	assert.Equal(t, "text", commandLabel(""))
	assert.Equal(t, "unknown", commandLabel("/drop_table"))
}
