package kafka

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

type Consumer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewConsumer(brokers []string, topic, group string, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka consumer initialized", "topic", topic, "group", group)
	return &Consumer{client: client, topic: topic, logger: logger}, nil
}

// Start polls in its own goroutine until ctx is done or the client is closed.
func (c *Consumer) Start(ctx context.Context, handler func(key, value []byte)) {
	go func() {
		for {
			fetches := c.client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				c.logger.Info("kafka consumer stopped", "topic", c.topic)
				return
			}
			fetches.EachError(func(topic string, partition int32, err error) {
				c.logger.Warn("kafka fetch error", "topic", topic, "partition", partition, "error", err)
			})
			iter := fetches.RecordIter()
			for !iter.Done() {
				record := iter.Next()
				handler(record.Key, record.Value)
			}
		}
	}()
}

func (c *Consumer) Stop() {
	c.client.Close()
}
