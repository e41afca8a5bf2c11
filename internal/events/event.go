// Package events provides event bus infrastructure for decoupled,
// event-driven communication between modules.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the base interface all domain events must implement.
type Event interface {
	// EventName returns a unique identifier for the event type.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc is an adapter to allow ordinary functions to be used as handlers.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus is the interface for publishing and subscribing to domain events.
type Bus interface {
	// Publish sends an event to all registered handlers for that event type.
	// Handlers are executed asynchronously.
	Publish(ctx context.Context, event Event)

	// PublishSync sends an event and waits for all handlers to complete.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for a specific event type.
	// The eventName should match the value returned by Event.EventName().
	Subscribe(eventName string, handler Handler)
}

// Event names.
const (
	EventNameRouteOptimized            = "routes.optimized"
	EventNameWaitlistSuggestionsServed = "waitlist.suggestions_served"
)

// RouteOptimized is published after a route optimization succeeds.
type RouteOptimized struct {
	BaseEvent
	OrganizationID       uuid.UUID
	GroomerID            uuid.UUID
	Provider             string
	StopCount            int
	TotalDurationMinutes int
}

// EventName returns the event identifier.
func (RouteOptimized) EventName() string { return EventNameRouteOptimized }

// WaitlistSuggestionsServed is published after a suggestion request completes.
type WaitlistSuggestionsServed struct {
	BaseEvent
	OrganizationID  uuid.UUID
	GroomerID       uuid.UUID
	TargetDate      time.Time
	CandidateCount  int
	SuggestionCount int
}

// EventName returns the event identifier.
func (WaitlistSuggestionsServed) EventName() string { return EventNameWaitlistSuggestionsServed }
