package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Publisher is the contract the bookings module publishes through.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the booking event producer
type KafkaProducerConfig struct {
	Brokers          []string
	BookingTopic     string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		BookingTopic:     "booking-events",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// KafkaBookingProducer publishes booking events to Kafka
type KafkaBookingProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaBookingProducer creates a new Kafka booking event producer
func NewKafkaBookingProducer(config *KafkaProducerConfig) (Publisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps a trip's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaBookingProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishBookingEvent publishes a single booking event to Kafka
func (kbp *KafkaBookingProducer) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kbp.config.BookingTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("booking_ref"), Value: []byte(event.BookingRef)},
		},
	}

	partition, offset, err := kbp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	log.Printf("Booking event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Ref: %s",
		kbp.config.BookingTopic, partition, offset, event.Type, event.BookingRef)

	return nil
}

// Close shuts down the producer
func (kbp *KafkaBookingProducer) Close() error {
	if err := kbp.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// HealthCheck verifies the producer can reach the cluster
func (kbp *KafkaBookingProducer) HealthCheck(ctx context.Context) error {
	probe := NewBookingEvent(EventType("health.check"), "health", uuid.Nil)
	messageBytes, err := probe.ToJSON()
	if err != nil {
		return err
	}

	_, _, err = kbp.producer.SendMessage(&sarama.ProducerMessage{
		Topic: kbp.config.BookingTopic,
		Key:   sarama.StringEncoder("health"),
		Value: sarama.ByteEncoder(messageBytes),
	})
	if err != nil {
		return fmt.Errorf("kafka health check failed: %w", err)
	}
	return nil
}

// NoopPublisher is used when Kafka is disabled; events are dropped with a log
// line so local development works without a broker.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	log.Printf("Kafka disabled, dropping booking event - Type: %s, Ref: %s", event.Type, event.BookingRef)
	return nil
}

func (NoopPublisher) Close() error { return nil }

func (NoopPublisher) HealthCheck(ctx context.Context) error { return nil }
