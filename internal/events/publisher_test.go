package events

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventFeedbackCreated, FeedbackEvent{FeedbackID: 1, StudentID: 2, CourseID: 3, Rating: 5})

	if event.ID == "" {
		t.Error("expected generated event ID")
	}
	if event.Type != EventFeedbackCreated {
		t.Errorf("type = %q", event.Type)
	}
	if event.Source != eventSource || event.Version != eventVersion {
		t.Errorf("envelope = source %q version %q", event.Source, event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	other := NewEvent(EventFeedbackCreated, nil)
	if other.ID == event.ID {
		t.Error("expected unique event IDs")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.Default())
	ctx := context.Background()

	if err := publisher.Publish(ctx, NewEvent(EventUserRegistered, UserEvent{UserID: 1})); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := publisher.Publish(ctx, NewEvent(EventUserBlocked, UserEvent{UserID: 1, IsBlocked: true})); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("recorded %d events, want 2", len(published))
	}
	if published[0].Type != EventUserRegistered || published[1].Type != EventUserBlocked {
		t.Errorf("event order = %q, %q", published[0].Type, published[1].Type)
	}

	publisher.ClearEvents()
	if got := publisher.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("events remain after ClearEvents: %d", len(got))
	}
}

func TestNoopEventPublisher(t *testing.T) {
	publisher := NewNoopEventPublisher()
	if err := publisher.Publish(context.Background(), NewEvent(EventUserDeleted, nil)); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
