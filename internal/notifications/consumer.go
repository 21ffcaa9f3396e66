package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// Handler processes booking events pulled off Kafka. The default handler
// logs the customer-facing notification; a real SMS/email gateway can be
// swapped in without touching the consumer.
type Handler interface {
	HandleBookingEvent(ctx context.Context, event *BookingEvent) error
}

type Consumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "busexpress-notifications",
		Topics:               []string{"booking-events"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaBookingConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	handler       Handler
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaBookingConsumer(config *ConsumerConfig, handler Handler) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaBookingConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		handler:       handler,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (kbc *KafkaBookingConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("Starting %d booking event workers for topics: %v", numWorkers, kbc.topics)

	go kbc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			kbc.runWorker(ctx, workerID)
		}(i)
	}

	return nil
}

func (kbc *KafkaBookingConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		consumer: kbc,
		workerID: workerID,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
			err := kbc.consumerGroup.Consume(ctx, kbc.topics, handler)
			if err != nil {
				log.Printf("Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (kbc *KafkaBookingConsumer) handleErrors() {
	for err := range kbc.consumerGroup.Errors() {
		log.Printf("Consumer group error: %v", err)
	}
}

func (kbc *KafkaBookingConsumer) Stop() error {
	kbc.cancel()

	if err := kbc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	return nil
}

func (kbc *KafkaBookingConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-kbc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if kbc.handler == nil {
			return fmt.Errorf("event handler not configured")
		}
		return nil
	}
}

type consumerGroupHandler struct {
	consumer *KafkaBookingConsumer
	workerID int
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("Worker %d: consumer group session started", h.workerID)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("Worker %d: consumer group session ended", h.workerID)
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			err := h.processMessage(session.Context(), message)
			if err != nil {
				log.Printf("Worker %d: error processing message: %v", h.workerID, err)
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := BookingEventFromJSON(message.Value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal booking event: %w", err)
	}

	return h.executeWithRetry(ctx, event)
}

func (h *consumerGroupHandler) executeWithRetry(ctx context.Context, event *BookingEvent) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := h.consumer.handler.HandleBookingEvent(ctx, event)
		if err == nil {
			return nil
		}

		if attempt == maxRetries {
			log.Printf("Worker %d: giving up on event %s after %d attempts: %v", h.workerID, event.ID, maxRetries, err)
			return err
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// LogHandler is the default booking event handler. It records the customer
// notification in the application log; production deployments replace it
// with an SMS or email gateway.
type LogHandler struct{}

func (LogHandler) HandleBookingEvent(ctx context.Context, event *BookingEvent) error {
	switch event.Type {
	case EventBookingConfirmed:
		log.Printf("Notify %s <%s>: booking %s confirmed, seats %v, amount %.2f",
			event.CustomerName, event.CustomerPhone, event.BookingRef, event.SeatNumbers, event.Amount)
	case EventBookingCancelled:
		log.Printf("Notify %s <%s>: booking %s cancelled",
			event.CustomerName, event.CustomerPhone, event.BookingRef)
	default:
		log.Printf("Unhandled booking event type %s for %s", event.Type, event.BookingRef)
	}
	return nil
}
