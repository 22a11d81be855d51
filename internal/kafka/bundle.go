package kafka

import (
	"errors"
	"log/slog"

	"trip-planner/internal/config"
)

type KafkaBundle struct {
	ExchangeProducer  *Producer
	ItineraryProducer *Producer
	PopularProducer   *Producer

	UserConsumer    *Consumer
	PopularConsumer *Consumer
}

func InitKafka(cfg config.KafkaConfig, logger *slog.Logger) (*KafkaBundle, error) {
	var (
		b   KafkaBundle
		err error
		e   error
	)

	b.ExchangeProducer, e = NewProducer(cfg.Brokers, cfg.ExchangeTopic, logger)
	err = errors.Join(err, e)
	b.ItineraryProducer, e = NewProducer(cfg.Brokers, cfg.ItineraryTopic, logger)
	err = errors.Join(err, e)
	b.PopularProducer, e = NewProducer(cfg.Brokers, cfg.PopularTopic, logger)
	err = errors.Join(err, e)

	b.UserConsumer, e = NewConsumer(cfg.Brokers, cfg.UserTopic, "trip-planner-user-syncer", logger)
	err = errors.Join(err, e)
	b.PopularConsumer, e = NewConsumer(cfg.Brokers, cfg.PopularTopic, "trip-planner-prewarm", logger)
	err = errors.Join(err, e)

	if err != nil {
		b.Close()
		return nil, err
	}
	return &b, nil
}

// Close is safe on a partially initialized bundle.
func (b *KafkaBundle) Close() {
	for _, c := range []*Consumer{b.UserConsumer, b.PopularConsumer} {
		if c != nil {
			c.Stop()
		}
	}
	for _, p := range []*Producer{b.ExchangeProducer, b.ItineraryProducer, b.PopularProducer} {
		if p != nil {
			p.Close()
		}
	}
}
