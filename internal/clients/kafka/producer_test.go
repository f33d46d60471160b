package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/model/ledger"
)

func Test_OnPublishExpense_ShouldSendJSONEvent(t *testing.T) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	syncProducer := mocks.NewSyncProducer(t, config)
	event := ledger.ExpenseAdded{
		Email:        "ann@mail.com",
		Amount:       12.5,
		Category:     "Food",
		Date:         "2024-03-02",
		MonthIndex:   2,
		MonthlyTotal: 40,
	}

	syncProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got ledger.ExpenseAdded
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got != event {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	producer := newProducer(syncProducer, "expenses")
	require.NoError(t, producer.PublishExpense(context.Background(), event))
	producer.Close()
}

func Test_OnBrokerFailure_ShouldReturnError(t *testing.T) {
	syncProducer := mocks.NewSyncProducer(t, nil)
	syncProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := newProducer(syncProducer, "expenses")
	err := producer.PublishExpense(context.Background(), ledger.ExpenseAdded{Email: "ann@mail.com"})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	producer.Close()
}
