package notifier

import (
	"context"
	"time"

	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer without a default topic; every message
// names its own.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish keys messages so all events of one order land on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: payload,
	})
	if err != nil {
		return errs.Wrapf(err, "failed to publish to %s", topic)
	}
	return nil
}
