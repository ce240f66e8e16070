package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/stoxly/stoxly/internal/models"
)

// Producer publishes ledger events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishTradeExecuted publishes a buy or sell event
func (p *Producer) PublishTradeExecuted(ctx context.Context, owner string, pos *models.Position, action string) error {
	event := models.LedgerEvent{
		EventType: models.EventTradeExecuted,
		Owner:     owner,
		Symbol:    pos.Symbol,
		Action:    action,
		Price:     pos.Price,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, pos.Symbol, event)
}

// PublishPricesRefreshed publishes a catalog refresh event
func (p *Producer) PublishPricesRefreshed(ctx context.Context) error {
	event := models.LedgerEvent{
		EventType: models.EventPricesRefreshed,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, models.EventPricesRefreshed, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
