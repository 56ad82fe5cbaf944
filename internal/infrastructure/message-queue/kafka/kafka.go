package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/config"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultMaxRetries   = 3
	defaultWriteTimeout = 5 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Producer publishes events with retries behind a circuit breaker so a dead
// broker stops costing every request the full retry budget.
type Producer struct {
	writer       messageWriter
	cb           *gobreaker.CircuitBreaker[[]byte]
	maxRetries   int
	backoff      time.Duration
	writeTimeout time.Duration
}

// CreateKafkaWriter dials lazily and redials after broker failures. Messages
// are keyed by product id, so events for one product keep their order.
func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:        config.KafkaConfig.BrokerTopic,
		Balancer:     &kafka.Hash{},
		BatchSize:    1,
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: config.KafkaConfig.WriteTimeout,
	}
}

func NewProducer(writer messageWriter, name string, writeTimeout time.Duration) *Producer {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	return &Producer{
		writer:       writer,
		cb:           gobreaker.NewCircuitBreaker[[]byte](st),
		maxRetries:   defaultMaxRetries,
		backoff:      time.Second,
		writeTimeout: writeTimeout,
	}
}

func (p *Producer) Publish(ctx context.Context, msg dto.KafkaMessage, key string) error {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < p.maxRetries; i++ {
		_, err = p.cb.Execute(func() ([]byte, error) {
			writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
			defer cancel()

			return nil, p.writer.WriteMessages(writeCtx, kafka.Message{Key: []byte(key), Value: jsonMsg})
		})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", msg.EventType).Int("attempt", i+1).Msg("")

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", p.maxRetries, err)
}

// NoopPublisher stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, msg dto.KafkaMessage, key string) error {
	log.Ctx(ctx).Debug().Str("component", "Publish").Str("event_type", msg.EventType).Msg("no broker configured, event dropped")
	return nil
}
