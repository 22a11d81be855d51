package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

type ProducerInterface interface {
	PublishObjectAsync(key []byte, obj interface{})
}

type Producer struct {
	topic  string
	client *kgo.Client
	logger *slog.Logger
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka producer initialized", "topic", topic, "brokers", brokers)
	return &Producer{topic: topic, client: client, logger: logger}, nil
}

func (p *Producer) Topic() string {
	return p.topic
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(key, value []byte) error {
	msg := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.client.ProduceSync(ctx, msg).FirstErr(); err != nil {
		p.logger.Error("kafka publish failed", "topic", p.topic, "error", err)
		return err
	}

	p.logger.Debug("published", "topic", p.topic, "key", string(key))
	return nil
}

func (p *Producer) PublishObject(key []byte, obj interface{}) error {
	value, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return p.Publish(key, value)
}

func (p *Producer) PublishObjectAsync(key []byte, obj interface{}) {
	go func() {
		if err := p.PublishObject(key, obj); err != nil {
			p.logger.Warn("kafka async publish failed", "topic", p.topic, "key", string(key), "error", err)
		}
	}()
}
