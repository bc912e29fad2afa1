package kafka_test

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmaster/config"
	"hostmaster/infras/kafka"
	otelMocks "hostmaster/infras/otel/mocks"
)

type reminder struct {
	ReservationID int64  `json:"reservation_id"`
	Kind          string `json:"kind"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "reservation:12", Value: reminder{ReservationID: 12, Kind: "checkin"}}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("reservation:12"), msg.Key)
	assert.JSONEq(t, `{"reservation_id":12,"kind":"checkin"}`, string(msg.Value))

	decoded, err := kafka.Decode[reminder](msg)
	require.NoError(t, err)
	assert.Equal(t, reminder{ReservationID: 12, Kind: "checkin"}, decoded)
}

func TestToKafkaMessageRejectsUnencodableValue(t *testing.T) {
	message := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	require.Error(t, err)
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	_, err := kafka.Decode[reminder](kafkaGo.Message{Key: []byte("k"), Value: []byte("{")})
	require.Error(t, err)
}

func TestSendMessagesWithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{}, otelMocks.NewOtel())

	err := client.SendMessages(context.Background(), "notifications", kafka.Message{Key: "k", Value: "v"})
	require.ErrorIs(t, err, kafka.ErrNoBrokers)
	require.NoError(t, client.Close())
}

func TestConsumeWithoutTopicReturns(t *testing.T) {
	client := kafka.New(&config.Config{}, otelMocks.NewOtel())

	called := false
	client.Consume(context.Background(), "", "", func(_ context.Context, _ kafkaGo.Message) { called = true })

	assert.False(t, called)
}
