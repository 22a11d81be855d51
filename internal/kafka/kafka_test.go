package kafka

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kfake"
)

const testTopic = "exchange-updates"

// logBuffer collects log output written from consumer goroutines.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newCluster(t *testing.T) []string {
	t.Helper()
	cluster, err := kfake.NewCluster(kfake.NumBrokers(1), kfake.SeedTopics(1, testTopic))
	require.NoError(t, err)
	t.Cleanup(cluster.Close)
	return cluster.ListenAddrs()
}

func newLogger(buf *logBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestProducerConsumer_RoundTrip(t *testing.T) {
	brokers := newCluster(t)
	logs := &logBuffer{}

	producer, err := NewProducer(brokers, testTopic, newLogger(logs))
	require.NoError(t, err)
	defer producer.Close()
	assert.Equal(t, testTopic, producer.Topic())

	require.NoError(t, producer.PublishObject([]byte("exchange:usd_eur"), map[string]any{"from": "USD", "to": "EUR", "rate": 0.92}))

	consumer, err := NewConsumer(brokers, testTopic, "trip-planner-test", newLogger(logs))
	require.NoError(t, err)
	defer consumer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type message struct{ key, value string }
	got := make(chan message, 1)
	consumer.Start(ctx, func(key, value []byte) {
		select {
		case got <- message{string(key), string(value)}:
		default:
		}
	})

	select {
	case m := <-got:
		assert.Equal(t, "exchange:usd_eur", m.key)
		assert.JSONEq(t, `{"from":"USD","to":"EUR","rate":0.92}`, m.value)
	case <-time.After(10 * time.Second):
		t.Fatal("message was not consumed")
	}
}

func TestProducer_PublishObjectMarshalError(t *testing.T) {
	producer, err := NewProducer(newCluster(t), testTopic, newLogger(&logBuffer{}))
	require.NoError(t, err)
	defer producer.Close()

	err = producer.PublishObject([]byte("k"), make(chan int))
	assert.Error(t, err)
}

func TestConsumer_StopsOnCancelledContext(t *testing.T) {
	logs := &logBuffer{}
	consumer, err := NewConsumer(newCluster(t), testTopic, "trip-planner-test", newLogger(logs))
	require.NoError(t, err)
	defer consumer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx, func(key, value []byte) {})
	cancel()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "kafka consumer stopped")
	}, 5*time.Second, 10*time.Millisecond)
}

func TestConsumer_StopsOnClosedClient(t *testing.T) {
	logs := &logBuffer{}
	consumer, err := NewConsumer(newCluster(t), testTopic, "trip-planner-test", newLogger(logs))
	require.NoError(t, err)

	consumer.Start(context.Background(), func(key, value []byte) {})
	consumer.Stop()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "kafka consumer stopped")
	}, 5*time.Second, 10*time.Millisecond)
}

func TestKafkaBundle_CloseIsNilSafe(t *testing.T) {
	var b KafkaBundle
	assert.NotPanics(t, b.Close)
}
