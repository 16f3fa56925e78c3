package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	eventSource  = "feedback-service"
	eventVersion = "1.0"

	// Kafka topic carrying all feedback-service domain events.
	TopicFeedbackEvents = "feedback-service.events"
)

// Event types published by this service.
const (
	EventFeedbackCreated = "feedback.created"
	EventFeedbackUpdated = "feedback.updated"
	EventFeedbackDeleted = "feedback.deleted"
	EventUserRegistered  = "user.registered"
	EventUserBlocked     = "user.blocked"
	EventUserDeleted     = "user.deleted"
)

// Event is the envelope for all published domain events.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an event envelope with a fresh ID and timestamp.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// FeedbackEvent is the payload for feedback.* events.
type FeedbackEvent struct {
	FeedbackID uint   `json:"feedbackId"`
	StudentID  uint   `json:"studentId"`
	CourseID   uint   `json:"courseId"`
	Rating     int    `json:"rating,omitempty"`
	CourseCode string `json:"courseCode,omitempty"`
}

// UserEvent is the payload for user.* events.
type UserEvent struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ===== KAFKA PUBLISHER =====

// KafkaEventPublisher publishes events to Kafka via watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaEventPublisher connects a watermill Kafka publisher.
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.publisher.Publish(TopicFeedbackEvents, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("Event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// ===== NOOP PUBLISHER =====

// NoopEventPublisher discards events; used when Kafka is not configured.
type NoopEventPublisher struct{}

func NewNoopEventPublisher() *NoopEventPublisher { return &NoopEventPublisher{} }

func (p *NoopEventPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (p *NoopEventPublisher) Close() error                                   { return nil }

// ===== MOCK PUBLISHER (tests) =====

// MockEventPublisher records events in memory for assertions.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *MockEventPublisher) Close() error { return nil }

// GetPublishedEvents returns a copy of all recorded events.
func (p *MockEventPublisher) GetPublishedEvents() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// ClearEvents drops all recorded events.
func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
