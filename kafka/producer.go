package kafka

import (
	"context"
	"encoding/json"

	"storefront/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes checkout events keyed by session id so all events for
// a session land on the same partition.
type Producer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

func (p *Producer) SendCheckoutEvent(event models.CheckoutEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SessionID),
		Value: data,
	}

	err = p.writer.WriteMessages(context.Background(), msg)
	if err != nil {
		p.logger.Warn("failed to send Kafka message", zap.String("topic", p.topic), zap.Error(err))
	}
	return err
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
